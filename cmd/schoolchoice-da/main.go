// Command schoolchoice-da is the CLI boundary around the policy/matcher/core
// engine: it reads the seven tabular input relations from CSV files,
// optionally loads a YAML feature-flag config, runs the Policy Driver once,
// and writes the result relation to CSV. Tabular parsing, column-presence
// handling, and the result serializer live entirely in this command so the
// module is runnable end to end without dictating a file format on its
// importable packages.
package main

import (
	"encoding/csv"
	"flag"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/tether-education/schoolchoice-da/policy"
	"github.com/tether-education/schoolchoice-da/result"
)

func main() {
	var (
		vacanciesPath        = flag.String("vacancies", "", "path to vacancies.csv")
		applicantsPath       = flag.String("applicants", "", "path to applicants.csv")
		applicationsPath     = flag.String("applications", "", "path to applications.csv")
		priorityProfilesPath = flag.String("priority-profiles", "", "path to priority_profiles.csv")
		quotaOrderPath       = flag.String("quota-order", "", "path to quota_order.csv")
		siblingsPath         = flag.String("siblings", "", "path to siblings.csv (optional)")
		linksPath            = flag.String("links", "", "path to links.csv (optional)")
		configPath           = flag.String("config", "", "path to a YAML feature-flag config (optional)")
		outPath              = flag.String("out", "", "path to write the result CSV (default: stdout)")
	)
	flag.Parse()

	log := logrus.NewEntry(logrus.StandardLogger())

	if err := run(*vacanciesPath, *applicantsPath, *applicationsPath, *priorityProfilesPath,
		*quotaOrderPath, *siblingsPath, *linksPath, *configPath, *outPath, log); err != nil {
		log.Fatalf("schoolchoice-da: %v", err)
	}
}

func run(vacanciesPath, applicantsPath, applicationsPath, priorityProfilesPath,
	quotaOrderPath, siblingsPath, linksPath, configPath, outPath string, log *logrus.Entry) error {
	vacancies, err := readVacancies(vacanciesPath)
	if err != nil {
		return err
	}
	applicants, err := readApplicants(applicantsPath)
	if err != nil {
		return err
	}
	applications, err := readApplications(applicationsPath)
	if err != nil {
		return err
	}
	priorityProfiles, err := readPriorityProfiles(priorityProfilesPath)
	if err != nil {
		return err
	}
	quotaOrder, err := readQuotaOrder(quotaOrderPath)
	if err != nil {
		return err
	}
	siblings, err := readSiblings(siblingsPath)
	if err != nil {
		return err
	}
	links, err := readLinks(linksPath)
	if err != nil {
		return err
	}

	opts, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	driver, err := policy.NewDriver(vacancies, applicants, applications, priorityProfiles, quotaOrder, siblings, links, opts...)
	if err != nil {
		return wrapf(err, "building driver")
	}

	log.WithField("applicants", len(applicants.Rows)).Info("starting match")
	if err := driver.Run(); err != nil {
		return wrapf(err, "running match")
	}

	rows, err := result.Extract(driver)
	if err != nil {
		return wrapf(err, "extracting result")
	}

	return writeResult(rows, outPath)
}

func writeResult(rows []result.Row, outPath string) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return wrapf(err, "creating %s", outPath)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"applicant_id", "grade_id", "program_id", "institution_id", "quota_id", "assigned_score", "priority_profile"}
	if err := w.Write(header); err != nil {
		return wrapf(err, "writing header")
	}

	for _, row := range rows {
		record := []string{row.ApplicantID, strconv.Itoa(row.GradeID)}
		if row.Assigned {
			record = append(record,
				row.ProgramID,
				row.InstitutionID,
				row.QuotaID,
				strconv.FormatFloat(row.AssignedScore, 'f', -1, 64),
				strconv.Itoa(row.PriorityProfile),
			)
		} else {
			record = append(record, "", "", "", "", "")
		}
		if err := w.Write(record); err != nil {
			return wrapf(err, "writing row for %s", row.ApplicantID)
		}
	}
	if err := w.Error(); err != nil {
		return wrapf(err, "flushing output")
	}
	return nil
}
