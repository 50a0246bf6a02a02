package report

import (
	"github.com/hadirin/absensi-backend-go/internal/pkg/validator"
)

// Audience decides the exported row shape: administrative exports carry
// identity and department columns, self exports do not.
type Audience string

const (
	AudienceSelf Audience = "self"
	AudienceAll  Audience = "all"
)

// Criteria is the report filter as received from the caller. Empty strings
// mean "no filter", never a literal match.
type Criteria struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Type       string `json:"type,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (c *Criteria) Validate() error {
	var errs validator.ValidationErrors

	var start, end *string
	if c.StartDate != "" {
		if _, valid := validator.IsValidDate(c.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			start = &c.StartDate
		}
	}

	if c.EndDate != "" {
		if _, valid := validator.IsValidDate(c.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			end = &c.EndDate
		}
	}

	if len(errs) > 0 {
		return errs
	}

	if start != nil && end != nil && *start > *end {
		return ErrInvalidDateRange
	}

	return nil
}

// Report is the tabular result. The same header/rows feed both the on-screen
// table and the CSV export so the two views never diverge.
type Report struct {
	GeneratedAt string     `json:"generated_at"`
	Audience    Audience   `json:"audience"`
	Header      []string   `json:"header"`
	Rows        [][]string `json:"rows"`
	TotalRows   int        `json:"total_rows"`
}
