package classifier

import (
	"math/rand"

	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/model"
)

// GeneralIT is the fallback label for candidates no rule matches.
const GeneralIT = "General IT"

// SyntheticInterests is the interest pool the synthetic generator draws from.
var SyntheticInterests = []string{
	"AI/ML", "Data Science", "Web Development", "UI/UX Design",
	"Cyber Security", "Business Analyst", "Software Engineering",
}

// Sample is one labelled training row.
type Sample struct {
	Input  model.RawAssessmentInput
	Career string
}

// Synthetic draws n labelled samples from rng. CGPA is uniform on [2.5,10),
// aptitude on [50,99] and the three skills on [1,9].
func Synthetic(n int, rng *rand.Rand) []Sample {
	out := make([]Sample, n)
	for i := range out {
		in := model.RawAssessmentInput{
			CGPA:          model.Round2(2.5 + rng.Float64()*7.5),
			Aptitude:      50 + rng.Intn(50),
			Coding:        1 + rng.Intn(9),
			Communication: 1 + rng.Intn(9),
			Leadership:    1 + rng.Intn(9),
		}
		in.InterestDomain = SyntheticInterests[rng.Intn(len(SyntheticInterests))]
		out[i] = Sample{Input: in, Career: Label(in)}
	}
	return out
}

// Label applies the rule set the synthetic data is generated from. Rules are
// checked in order and the first match wins.
func Label(in model.RawAssessmentInput) string {
	switch {
	case in.InterestDomain == "AI/ML" && in.Coding > 7:
		return "AI Engineer"
	case in.InterestDomain == "Data Science" && in.Aptitude > 80:
		return "Data Scientist"
	case in.InterestDomain == "Web Development" && in.Coding > 6:
		return "Web Developer"
	case in.InterestDomain == "UI/UX Design" && in.Communication > 7:
		return "UI/UX Designer"
	case in.InterestDomain == "Cyber Security" && in.Coding > 7:
		return "Cyber Security Analyst"
	case in.InterestDomain == "Business Analyst" && in.Communication > 7:
		return "Business Analyst"
	case in.Coding > 5:
		return "Software Developer"
	default:
		return GeneralIT
	}
}

// FeatureNames returns the feature names in vector order.
func FeatureNames() []string {
	return append([]string(nil), features.Names[:]...)
}
