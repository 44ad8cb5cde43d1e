package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/models"
)

func newTestValidator() *Validator {
	return New(models.NewSchema([]string{"Youth", "Family"}, nil, ""))
}

func TestValidator_Fields_Create(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		fields  map[string]string
		want    map[string]string
		wantErr error
		name    string
	}{
		{
			name: "valid create is canonicalised",
			fields: map[string]string{
				models.FieldFirstName: " Анна ",
				models.FieldBirthDate: "02.01.1990",
				models.FieldGroup:     "youth",
			},
			want: map[string]string{
				models.FieldFirstName: "Анна",
				models.FieldBirthDate: "1990-01-02",
				models.FieldGroup:     "Youth",
			},
		},
		{
			name:    "missing first name",
			fields:  map[string]string{models.FieldLastName: "Петрова"},
			wantErr: models.ErrRequiredField,
		},
		{
			name:    "blank first name",
			fields:  map[string]string{models.FieldFirstName: "   "},
			wantErr: models.ErrRequiredField,
		},
		{
			name:    "unknown field",
			fields:  map[string]string{models.FieldFirstName: "Анна", "salary": "100"},
			wantErr: models.ErrUnknownField,
		},
		{
			name:    "bad date",
			fields:  map[string]string{models.FieldFirstName: "Анна", models.FieldBirthDate: "завтра"},
			wantErr: models.ErrInvalidValue,
		},
		{
			name:    "unknown group",
			fields:  map[string]string{models.FieldFirstName: "Анна", models.FieldGroup: "Seniors"},
			wantErr: models.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Fields(tt.fields, true)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidator_Fields_Update(t *testing.T) {
	v := newTestValidator()

	got, err := v.Fields(map[string]string{models.FieldStatus: "ВИП"}, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{models.FieldStatus: "вип"}, got)

	// Очистка необязательного поля допустима
	got, err = v.Fields(map[string]string{models.FieldBirthDate: ""}, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{models.FieldBirthDate: ""}, got)

	_, err = v.Fields(map[string]string{}, false)
	assert.ErrorIs(t, err, models.ErrInvalidValue)

	_, err = v.Fields(map[string]string{models.FieldFirstName: ""}, false)
	assert.ErrorIs(t, err, models.ErrRequiredField)
}

func TestValidator_Fields_MaxLength(t *testing.T) {
	v := newTestValidator()

	long := make([]rune, 101)
	for i := range long {
		long[i] = 'я'
	}

	_, err := v.Fields(map[string]string{models.FieldFirstName: string(long)}, true)
	assert.ErrorIs(t, err, models.ErrInvalidValue)
	assert.Contains(t, err.Error(), "at most 100")
}

func TestValidateSubject(t *testing.T) {
	assert.NoError(t, ValidateSubject("123456789"))
	assert.NoError(t, ValidateSubject("admin@church"))
	assert.Error(t, ValidateSubject(""))
	assert.Error(t, ValidateSubject("имя"))
	assert.Error(t, ValidateSubject("with space"))
}
