package sales

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodFromFormDaily(t *testing.T) {
	form := url.Values{}
	form.Set("sucursal", "Centro")
	form.Set("anio", "2025")
	form.Set("mes", "3")
	form.Set("dia", "14")

	r := httptest.NewRequest("POST", "/sales/upload-preview", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, err := periodFromForm(r, ModeDaily)
	require.NoError(t, err)
	assert.Equal(t, Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}, p)
}

func TestPeriodFromFormMonthlyDerivesTotalDays(t *testing.T) {
	form := url.Values{}
	form.Set("sucursal", "Centro")
	form.Set("anio", "2024")
	form.Set("mes", "2")

	r := httptest.NewRequest("POST", "/sales/upload-preview", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, err := periodFromForm(r, ModeMonthly)
	require.NoError(t, err)
	assert.Equal(t, 29, p.TotalDays, "leap February")
}

func TestPeriodFromFormInvalid(t *testing.T) {
	form := url.Values{}
	form.Set("sucursal", "Centro")
	form.Set("anio", "2025")
	form.Set("mes", "3")

	r := httptest.NewRequest("POST", "/sales/upload-preview", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err := periodFromForm(r, ModeDaily)
	assert.Error(t, err, "daily mode without a day must fail")
}

func TestDuplicateMessages(t *testing.T) {
	p := Period{Branch: "Centro", Year: 2025, Month: 3, Day: 14}
	assert.Contains(t, duplicateDayMessage(p), "14 de Marzo 2025")
	assert.Contains(t, duplicateMonthMessage(p), "Marzo 2025")
}

func TestHead(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2, 3}, head(s, 3))
	assert.Equal(t, s, head(s, 10))
}

func TestGoalStatus(t *testing.T) {
	assert.Equal(t, "cumplido", goalStatus(decimal.NewFromInt(105)))
	assert.Equal(t, "cumplido", goalStatus(decimal.NewFromInt(100)))
	assert.Equal(t, "en_progreso", goalStatus(decimal.NewFromInt(80)))
	assert.Equal(t, "requiere_accion", goalStatus(decimal.NewFromInt(20)))
}
