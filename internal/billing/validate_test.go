package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aninayuwoki/cobranza/models"
)

func strPtr(s string) *string { return &s }

func numPtr(v float64) *models.Number {
	n := models.Num(v)
	return &n
}

func TestValidate_NameRequired(t *testing.T) {
	tests := []struct {
		name  string
		input models.StudentInput
	}{
		{"absent", models.StudentInput{}},
		{"empty", models.StudentInput{Name: strPtr("")}},
		{"whitespace only", models.StudentInput{Name: strPtr("   ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := Validate(tt.input)
			require.NotNil(t, verr)
			assert.Equal(t, "missing required field: name", verr.Message)
		})
	}
}

func TestValidate_WeeklyAmount(t *testing.T) {
	var in models.StudentInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ana","weeklyAmount":"abc"}`), &in))
	verr := Validate(in)
	require.NotNil(t, verr)
	assert.Equal(t, "weeklyAmount is not a valid number", verr.Message)

	verr = Validate(models.StudentInput{Name: strPtr("Ana"), WeeklyAmount: numPtr(-1)})
	require.NotNil(t, verr)
	assert.Equal(t, "weeklyAmount must be non-negative", verr.Message)

	// Zero and absent are both acceptable here; positivity is the
	// calculator's concern, not the validator's.
	assert.Nil(t, Validate(models.StudentInput{Name: strPtr("Ana"), WeeklyAmount: numPtr(0)}))
	assert.Nil(t, Validate(models.StudentInput{Name: strPtr("Ana")}))
}

func TestValidate_StartDate(t *testing.T) {
	// Present but empty is an error; absent is not.
	verr := Validate(models.StudentInput{Name: strPtr("Ana"), StartDate: strPtr("")})
	require.NotNil(t, verr)
	assert.Equal(t, "start date cannot be empty", verr.Message)

	verr = Validate(models.StudentInput{Name: strPtr("Ana"), StartDate: strPtr("22/01/2024")})
	require.NotNil(t, verr)
	assert.Equal(t, "invalid date format", verr.Message)

	assert.Nil(t, Validate(models.StudentInput{Name: strPtr("Ana"), StartDate: strPtr("2024-01-22")}))
}

func TestValidate_FirstFailureWins(t *testing.T) {
	// Name is checked before the also-invalid weekly amount.
	in := models.StudentInput{Name: strPtr(" "), WeeklyAmount: numPtr(-3), StartDate: strPtr("")}
	verr := Validate(in)
	require.NotNil(t, verr)
	assert.Equal(t, "missing required field: name", verr.Message)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	name := "  Ana  "
	in := models.StudentInput{Name: &name}
	require.Nil(t, Validate(in))
	assert.Equal(t, "  Ana  ", *in.Name)
}
