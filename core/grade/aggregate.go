package grade

const weightsEpsilon = 1e-9

// WeightedCategoryAverage returns (Σ grade·percent) / (Σ percent) on a 0-100 scale, or 0 for an empty list.
func WeightedCategoryAverage(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var weighted, total float64
	for _, r := range records {
		weighted += r.Grade * r.Percent
		total += r.Percent
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// FinalCourseGrade combines the three category averages with the course weights.
// It returns 0 whenever the weights do not total 100.
func FinalCourseGrade(assignments, tests, others []Record, weights Weights) float64 {
	if !weights.Complete() {
		return 0
	}
	return WeightedCategoryAverage(assignments)*weights.Assignments/100 +
		WeightedCategoryAverage(tests)*weights.Tests/100 +
		WeightedCategoryAverage(others)*weights.Others/100
}

// Summarize computes every category average and the final grade of env.
func Summarize(env Environment) Summary {
	w := env.CategoryPercentages
	return Summary{
		Assignments: WeightedCategoryAverage(env.Assignments),
		Tests:       WeightedCategoryAverage(env.Tests),
		Others:      WeightedCategoryAverage(env.Others),
		Weights:     w,
		WeightsSet:  w.Complete(),
		Final:       FinalCourseGrade(env.Assignments, env.Tests, env.Others, w),
	}
}
