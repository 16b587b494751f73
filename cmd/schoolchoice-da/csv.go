package main

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tether-education/schoolchoice-da/core"
	"github.com/tether-education/schoolchoice-da/policy"
)

// table is a header-indexed view over one CSV file's rows — the minimal
// shape the relation readers below need.
type table struct {
	header map[string]int
	rows   [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapf(err, "opening %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, wrapf(err, "reading %s", path)
	}
	if len(records) == 0 {
		return &table{header: map[string]int{}}, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[col] = i
	}
	return &table{header: header, rows: records[1:]}, nil
}

func (t *table) has(col string) bool {
	_, ok := t.header[col]
	return ok
}

func (t *table) get(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) getInt(row []string, col string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(t.get(row, col)))
	return v
}

func (t *table) getFloat(row []string, col string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(t.get(row, col)), 64)
	return v
}

// parseAttribute coerces a raw CSV cell into an int, float64, or string, the
// three concrete types an arbitrary named applicant characteristic may hold.
func parseAttribute(raw string) core.Attribute {
	raw = strings.TrimSpace(raw)
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// specialTags scans the header for a given prefix/suffix pair
// (e.g. "special_" + "_vacancies", "order_q" with no suffix) and returns the
// embedded integer tags found, sorted ascending.
func specialTags(header map[string]int, prefix, suffix string) []int {
	var tags []int
	for col := range header {
		if !strings.HasPrefix(col, prefix) || !strings.HasSuffix(col, suffix) {
			continue
		}
		middle := strings.TrimSuffix(strings.TrimPrefix(col, prefix), suffix)
		if tag, err := strconv.Atoi(middle); err == nil {
			tags = append(tags, tag)
		}
	}
	sort.Ints(tags)
	return tags
}

func readVacancies(path string) (policy.VacanciesInput, error) {
	t, err := readTable(path)
	if err != nil {
		return policy.VacanciesInput{}, err
	}
	specialTagsFound := specialTags(t.header, "special_", "_vacancies")

	var input policy.VacanciesInput
	for _, row := range t.rows {
		special := make(map[int]int, len(specialTagsFound))
		for _, tag := range specialTagsFound {
			special[tag] = t.getInt(row, "special_"+strconv.Itoa(tag)+"_vacancies")
		}
		input.Rows = append(input.Rows, policy.VacancyRow{
			ProgramID:        t.get(row, "program_id"),
			QuotaID:          t.get(row, "quota_id"),
			InstitutionID:    t.get(row, "institution_id"),
			GradeID:          t.getInt(row, "grade_id"),
			RegularVacancies: t.getInt(row, "regular_vacancies"),
			SpecialVacancies: special,
		})
	}
	return input, nil
}

func readApplicants(path string) (policy.ApplicantsInput, error) {
	t, err := readTable(path)
	if err != nil {
		return policy.ApplicantsInput{}, err
	}

	var characteristicCols []string
	for col := range t.header {
		if strings.HasPrefix(col, "applicant_characteristic_") {
			characteristicCols = append(characteristicCols, col)
		}
	}

	var input policy.ApplicantsInput
	input.HasSpecialAssignmentColumn = t.has("special_assignment")
	for _, row := range t.rows {
		var characteristics map[string]core.Attribute
		if len(characteristicCols) > 0 {
			characteristics = make(map[string]core.Attribute, len(characteristicCols))
			for _, col := range characteristicCols {
				name := strings.TrimPrefix(col, "applicant_characteristic_")
				characteristics[name] = parseAttribute(t.get(row, col))
			}
		}
		input.Rows = append(input.Rows, policy.ApplicantRow{
			ApplicantID:                t.get(row, "applicant_id"),
			GradeID:                    t.getInt(row, "grade_id"),
			SpecialAssignment:          t.getInt(row, "special_assignment"),
			SecuredEnrollmentProgramID: t.get(row, "secured_enrollment_program_id"),
			SecuredEnrollmentQuotaID:   t.get(row, "secured_enrollment_quota_id"),
			Characteristics:            characteristics,
		})
	}
	return input, nil
}

func readApplications(path string) (policy.ApplicationsInput, error) {
	t, err := readTable(path)
	if err != nil {
		return policy.ApplicationsInput{}, err
	}

	var input policy.ApplicationsInput
	input.HasLotteryColumn = t.has("lottery_number_quota")
	for _, row := range t.rows {
		input.Rows = append(input.Rows, policy.ApplicationRow{
			ApplicantID:            t.get(row, "applicant_id"),
			ProgramID:              t.get(row, "program_id"),
			QuotaID:                t.get(row, "quota_id"),
			InstitutionID:          t.get(row, "institution_id"),
			RankingProgram:         t.getInt(row, "ranking_program"),
			PriorityProfileProgram: t.getInt(row, "priority_profile_program"),
			PriorityNumberQuota:    t.getInt(row, "priority_number_quota"),
			LotteryNumberQuota:     t.getFloat(row, "lottery_number_quota"),
		})
	}
	return input, nil
}

func readPriorityProfiles(path string) (policy.PriorityProfilesInput, error) {
	t, err := readTable(path)
	if err != nil {
		return policy.PriorityProfilesInput{}, err
	}

	var quotaCols []string
	for col := range t.header {
		if strings.HasPrefix(col, "priority_q") {
			quotaCols = append(quotaCols, col)
		}
	}

	var input policy.PriorityProfilesInput
	for _, row := range t.rows {
		byQuota := make(map[string]int, len(quotaCols))
		for _, col := range quotaCols {
			quotaID := strings.TrimPrefix(col, "priority_q")
			byQuota[quotaID] = t.getInt(row, col)
		}
		input.Rows = append(input.Rows, policy.PriorityProfileRow{
			PriorityProfile:      t.getInt(row, "priority_profile"),
			HasSiblingTransition: t.has("priority_profile_sibling_transition"),
			SiblingTransition:    t.getInt(row, "priority_profile_sibling_transition"),
			PriorityByQuota:      byQuota,
		})
	}
	return input, nil
}

func readQuotaOrder(path string) (policy.QuotaOrderInput, error) {
	t, err := readTable(path)
	if err != nil {
		return policy.QuotaOrderInput{}, err
	}

	orderCols := specialTags(t.header, "order_q", "")
	var characteristicNames []string
	for col := range t.header {
		if strings.HasPrefix(col, "applicant_characteristic_") && strings.HasSuffix(col, "_criteria") {
			name := strings.TrimSuffix(strings.TrimPrefix(col, "applicant_characteristic_"), "_criteria")
			characteristicNames = append(characteristicNames, name)
		}
	}

	var input policy.QuotaOrderInput
	for _, row := range t.rows {
		orderedQuotas := make([]string, 0, len(orderCols))
		for _, tag := range orderCols {
			q := t.get(row, "order_q"+strconv.Itoa(tag))
			if q != "" {
				orderedQuotas = append(orderedQuotas, q)
			}
		}

		characteristics := make(map[string]policy.CriterionCheck, len(characteristicNames))
		for _, name := range characteristicNames {
			criteria := t.get(row, "applicant_characteristic_"+name+"_criteria")
			if criteria == "" {
				continue
			}
			characteristics[name] = policy.CriterionCheck{
				Criteria: criteria,
				Value:    parseAttribute(t.get(row, "applicant_characteristic_"+name+"_value")),
			}
		}

		input.Rows = append(input.Rows, policy.QuotaOrderRow{
			PriorityProfile:                  t.getInt(row, "priority_profile"),
			SecuredEnrollmentIndicator:        t.get(row, "secured_enrollment_indicator") == "1" || strings.EqualFold(t.get(row, "secured_enrollment_indicator"), "true"),
			SecuredEnrollmentQuotaIDCriteria:  t.get(row, "secured_enrollment_quota_id_criteria"),
			SecuredEnrollmentQuotaIDValue:     parseAttribute(t.get(row, "secured_enrollment_quota_id_value")),
			Characteristics:                  characteristics,
			OrderedQuotas:                     orderedQuotas,
		})
	}
	return input, nil
}

func readSiblings(path string) (policy.SiblingsInput, error) {
	if path == "" {
		return policy.SiblingsInput{}, nil
	}
	t, err := readTable(path)
	if err != nil {
		return policy.SiblingsInput{}, err
	}
	var input policy.SiblingsInput
	for _, row := range t.rows {
		input.Rows = append(input.Rows, policy.SiblingRow{
			ApplicantID: t.get(row, "applicant_id"),
			SiblingID:   t.get(row, "sibling_id"),
		})
	}
	return input, nil
}

func readLinks(path string) (policy.LinksInput, error) {
	if path == "" {
		return policy.LinksInput{}, nil
	}
	t, err := readTable(path)
	if err != nil {
		return policy.LinksInput{}, err
	}
	var input policy.LinksInput
	for _, row := range t.rows {
		input.Rows = append(input.Rows, policy.LinkRow{
			ApplicantID: t.get(row, "applicant_id"),
			LinkedID:    t.get(row, "linked_id"),
		})
	}
	return input, nil
}
