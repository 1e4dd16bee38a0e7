// Package reasons explains a career match in plain sentences.
package reasons

import (
	"fmt"
	"strings"

	"career-workers/internal/models"
	"career-workers/internal/profile"
)

const (
	MaxReasons = 4

	// StudentInterestThreshold and CareerInterestThreshold are absolute raw
	// scores, not relative to other dimensions.
	StudentInterestThreshold = 100.0
	CareerInterestThreshold  = 70.0

	FallbackReason    = "This career aligns with parts of your overall profile."
	MissingDataReason = "This career needs updated assessment data."
)

var valueDescriptions = map[models.ValueDimension]string{
	models.Impact:    "You want to make a difference, and this career lets you help others and improve lives.",
	models.Income:    "You value earning potential, and this career offers strong financial rewards.",
	models.Autonomy:  "You value independence, and this career gives you freedom in how you work.",
	models.Balance:   "You value work-life balance, and this career supports time for life outside work.",
	models.Growth:    "You love to keep learning, and this career offers continuous growth.",
	models.Stability: "You value security, and this career offers steady, reliable employment.",
}

var interestDescriptions = map[models.RIASECDimension]string{
	models.Realistic:     "Your hands-on, practical nature fits the physical and technical work here.",
	models.Investigative: "Your analytical mind will thrive on the problem-solving this career demands.",
	models.Artistic:      "Your creativity will find an outlet in this career's expressive work.",
	models.Social:        "Your desire to help people is at the heart of this career.",
	models.Enterprising:  "Your leadership and persuasion skills are a strong asset in this career.",
	models.Conventional:  "Your organized, detail-oriented approach suits the structured work here.",
}

var teamSizeDescriptions = map[models.TeamSize]string{
	models.TeamSolo:        "You prefer working alone, and this career offers plenty of solo work.",
	models.TeamIndependent: "You like working independently, which is common in this career.",
	models.TeamSmall:       "You enjoy small teams, and this career typically works in close-knit groups.",
	models.TeamLarge:       "You thrive in large organizations, which is typical for this career.",
	models.TeamLeader:      "You like to lead, and this career offers opportunities to guide teams.",
	models.TeamMinimal:     "You prefer minimal interaction, and this career allows focused, independent work.",
}

// Generate evaluates the reason rules in order and returns at most
// MaxReasons sentences. Rules that need a missing career profile are skipped,
// so the result may be empty.
func Generate(student models.StudentProfile, career models.Career) []string {
	out := make([]string, 0, MaxReasons)

	if career.InterestProfile != nil {
		if r, ok := interestOverlap(student.RIASEC, *career.InterestProfile); ok {
			out = append(out, r)
		}
	}

	if career.ValueProfile != nil {
		top := profile.TopValue(student.Values)
		if top == profile.TopValue(*career.ValueProfile) {
			out = append(out, valueDescriptions[top])
		}
	}

	if career.InterestProfile != nil {
		for _, d := range models.RIASECDimensions {
			if student.RIASEC.Get(d) > StudentInterestThreshold && career.InterestProfile.Get(d) > CareerInterestThreshold {
				out = append(out, interestDescriptions[d])
			}
		}
	}

	if career.WorkEnvironment != nil && student.Environment.TeamSize == career.WorkEnvironment.TeamSize {
		if desc, ok := teamSizeDescriptions[student.Environment.TeamSize]; ok {
			out = append(out, desc)
		}
	}

	if len(out) > MaxReasons {
		out = out[:MaxReasons]
	}
	return out
}

func interestOverlap(student, career models.RIASECProfile) (string, bool) {
	careerTop := profile.Top3RIASEC(career)
	var shared []string
	for _, d := range profile.Top3RIASEC(student) {
		for _, c := range careerTop {
			if d == c {
				shared = append(shared, d.Label())
				break
			}
		}
	}

	switch {
	case len(shared) >= 2:
		return fmt.Sprintf("Your %s interests strongly align with this career.", joinLabels(shared)), true
	case len(shared) == 1:
		return fmt.Sprintf("Your %s interests match well with this career.", shared[0]), true
	}
	return "", false
}

func joinLabels(labels []string) string {
	if len(labels) <= 2 {
		return strings.Join(labels, " and ")
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
}
