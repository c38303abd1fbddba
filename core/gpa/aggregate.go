package gpa

import "github.com/trezcool/daftari/core"

// YearGpa is the credit-weighted average grade of records, rounded to 2 decimals.
func YearGpa(records []Record) float64 {
	var weighted, credits float64
	for _, r := range records {
		weighted += r.Grade * r.CreditPoints
		credits += r.CreditPoints
	}
	if credits == 0 {
		return 0
	}
	return core.Round(weighted/credits, 2)
}

// OverallGpa applies YearGpa to the records of every year combined.
func OverallGpa(years Years) float64 {
	var all []Record
	for _, y := range years.Sorted() {
		all = append(all, years[y]...)
	}
	return YearGpa(all)
}

func TotalCreditsForYear(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.CreditPoints
	}
	return total
}

// BySemester keeps the records of semester along with the Yearly ones.
func BySemester(records []Record, semester string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Semester == semester || r.Semester == SemesterYearly {
			out = append(out, r)
		}
	}
	return out
}
