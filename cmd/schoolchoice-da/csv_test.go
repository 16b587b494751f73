package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadVacancies_ParsesSpecialColumns(t *testing.T) {
	path := writeTempCSV(t, "vacancies.csv",
		"program_id,quota_id,institution_id,grade_id,regular_vacancies,special_1_vacancies\n"+
			"P,0,I1,1,1,2\n")

	input, err := readVacancies(path)
	require.NoError(t, err)
	require.Len(t, input.Rows, 1)
	require.Equal(t, "P", input.Rows[0].ProgramID)
	require.Equal(t, 1, input.Rows[0].RegularVacancies)
	require.Equal(t, 2, input.Rows[0].SpecialVacancies[1])
}

func TestReadApplicants_ParsesCharacteristics(t *testing.T) {
	path := writeTempCSV(t, "applicants.csv",
		"applicant_id,grade_id,applicant_characteristic_income\n"+
			"A,1,42000\n")

	input, err := readApplicants(path)
	require.NoError(t, err)
	require.Len(t, input.Rows, 1)
	require.Equal(t, 42000, input.Rows[0].Characteristics["income"])
}

func TestReadQuotaOrder_ParsesOrderedQuotasAndCriteria(t *testing.T) {
	path := writeTempCSV(t, "quota_order.csv",
		"priority_profile,order_q0,order_q1,applicant_characteristic_income_criteria,applicant_characteristic_income_value\n"+
			"1,b,a,>=,30000\n")

	input, err := readQuotaOrder(path)
	require.NoError(t, err)
	require.Len(t, input.Rows, 1)
	require.Equal(t, []string{"b", "a"}, input.Rows[0].OrderedQuotas)
	require.Equal(t, ">=", input.Rows[0].Characteristics["income"].Criteria)
	require.Equal(t, 30000, input.Rows[0].Characteristics["income"].Value)
}

func TestLoadConfig_EmptyPathYieldsNoOptions(t *testing.T) {
	opts, err := loadConfig("")
	require.NoError(t, err)
	require.Nil(t, opts)
}

func TestLoadConfig_ParsesFeatureFlags(t *testing.T) {
	path := writeTempCSV(t, "config.yaml", "sibling_priority: true\norder: ascending\n")
	opts, err := loadConfig(path)
	require.NoError(t, err)
	require.NotEmpty(t, opts)
}
