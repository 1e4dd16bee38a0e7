// internal/profile/questions.go
package profile

import "career-workers/internal/models"

type QuestionKind string

const (
	KindInterest    QuestionKind = "interest"
	KindValue       QuestionKind = "value"
	KindEnvironment QuestionKind = "environment"
)

type RIASECDelta struct {
	Dimension models.RIASECDimension
	Points    float64
}

type ValueDelta struct {
	Dimension models.ValueDimension
	Points    float64
}

// AnswerContribution is what selecting one option adds to a profile.
// TeamSize and Pace, when set, overwrite the running environment preference.
type AnswerContribution struct {
	Text     string
	RIASEC   []RIASECDelta
	Values   []ValueDelta
	TeamSize *models.TeamSize
	Pace     *models.Pace
}

type AssessmentQuestion struct {
	ID      string
	Kind    QuestionKind
	Prompt  string
	Options []AnswerContribution
}

func r(d models.RIASECDimension, pts float64) RIASECDelta { return RIASECDelta{Dimension: d, Points: pts} }
func v(d models.ValueDimension, pts float64) ValueDelta   { return ValueDelta{Dimension: d, Points: pts} }
func team(t models.TeamSize) *models.TeamSize             { return &t }
func pace(p models.Pace) *models.Pace                     { return &p }

// AssessmentQuestions is the fixed 12-question career assessment.
var AssessmentQuestions = []AssessmentQuestion{
	{
		ID: "q1", Kind: KindInterest,
		Prompt: "Which weekend project sounds most appealing?",
		Options: []AnswerContribution{
			{Text: "Building or repairing something with your hands", RIASEC: []RIASECDelta{r(models.Realistic, 20), r(models.Investigative, 10)}},
			{Text: "Figuring out how a gadget or natural process works", RIASEC: []RIASECDelta{r(models.Investigative, 20), r(models.Realistic, 5)}},
			{Text: "Painting, writing, or making music", RIASEC: []RIASECDelta{r(models.Artistic, 20)}},
			{Text: "Volunteering to help people in your community", RIASEC: []RIASECDelta{r(models.Social, 20)}},
			{Text: "Starting a small side business", RIASEC: []RIASECDelta{r(models.Enterprising, 20)}},
			{Text: "Organizing a collection or planning a budget", RIASEC: []RIASECDelta{r(models.Conventional, 20)}},
		},
	},
	{
		ID: "q2", Kind: KindInterest,
		Prompt: "Which class do you look forward to the most?",
		Options: []AnswerContribution{
			{Text: "Physics or engineering lab", RIASEC: []RIASECDelta{r(models.Realistic, 15), r(models.Investigative, 15)}},
			{Text: "Biology or chemistry", RIASEC: []RIASECDelta{r(models.Investigative, 20)}},
			{Text: "Art, drama, or creative writing", RIASEC: []RIASECDelta{r(models.Artistic, 20)}},
			{Text: "Psychology or health", RIASEC: []RIASECDelta{r(models.Social, 20)}},
			{Text: "Business or debate", RIASEC: []RIASECDelta{r(models.Enterprising, 20)}},
			{Text: "Accounting or statistics", RIASEC: []RIASECDelta{r(models.Conventional, 20), r(models.Investigative, 5)}},
		},
	},
	{
		ID: "q3", Kind: KindInterest,
		Prompt: "In a group project you usually end up...",
		Options: []AnswerContribution{
			{Text: "Building the prototype", RIASEC: []RIASECDelta{r(models.Realistic, 20)}},
			{Text: "Doing the research", RIASEC: []RIASECDelta{r(models.Investigative, 20)}},
			{Text: "Designing how it looks", RIASEC: []RIASECDelta{r(models.Artistic, 20)}},
			{Text: "Keeping everyone working together", RIASEC: []RIASECDelta{r(models.Social, 20)}},
			{Text: "Pitching the idea to the class", RIASEC: []RIASECDelta{r(models.Enterprising, 20)}},
			{Text: "Tracking the schedule and details", RIASEC: []RIASECDelta{r(models.Conventional, 20)}},
		},
	},
	{
		ID: "q4", Kind: KindInterest,
		Prompt: "Which task would you happily spend an afternoon on?",
		Options: []AnswerContribution{
			{Text: "Assembling furniture or fixing a bike", RIASEC: []RIASECDelta{r(models.Realistic, 20)}},
			{Text: "Solving a tricky logic puzzle", RIASEC: []RIASECDelta{r(models.Investigative, 20)}},
			{Text: "Designing a poster or video", RIASEC: []RIASECDelta{r(models.Artistic, 20)}},
			{Text: "Tutoring a younger student", RIASEC: []RIASECDelta{r(models.Social, 20)}},
			{Text: "Negotiating a deal", RIASEC: []RIASECDelta{r(models.Enterprising, 20)}},
			{Text: "Cleaning up a messy spreadsheet", RIASEC: []RIASECDelta{r(models.Conventional, 20)}},
		},
	},
	{
		ID: "q5", Kind: KindInterest,
		Prompt: "Which tool would you most like to master?",
		Options: []AnswerContribution{
			{Text: "Power tools or machinery", RIASEC: []RIASECDelta{r(models.Realistic, 20)}},
			{Text: "A microscope or data analysis software", RIASEC: []RIASECDelta{r(models.Investigative, 20)}},
			{Text: "A camera or design software", RIASEC: []RIASECDelta{r(models.Artistic, 20)}},
			{Text: "Counseling and communication techniques", RIASEC: []RIASECDelta{r(models.Social, 20)}},
			{Text: "Sales and marketing platforms", RIASEC: []RIASECDelta{r(models.Enterprising, 20)}},
			{Text: "Bookkeeping or database systems", RIASEC: []RIASECDelta{r(models.Conventional, 20)}},
		},
	},
	{
		ID: "q6", Kind: KindInterest,
		Prompt: "Which problem would you most like to solve?",
		Options: []AnswerContribution{
			{Text: "A broken engine", RIASEC: []RIASECDelta{r(models.Realistic, 20), r(models.Investigative, 5)}},
			{Text: "An unexplained scientific result", RIASEC: []RIASECDelta{r(models.Investigative, 25)}},
			{Text: "A dull space that needs a new look", RIASEC: []RIASECDelta{r(models.Artistic, 20)}},
			{Text: "A friend going through a hard time", RIASEC: []RIASECDelta{r(models.Social, 25)}},
			{Text: "A struggling shop that needs more customers", RIASEC: []RIASECDelta{r(models.Enterprising, 20)}},
			{Text: "A disorganized filing system", RIASEC: []RIASECDelta{r(models.Conventional, 20)}},
		},
	},
	{
		ID: "q7", Kind: KindInterest,
		Prompt: "What do you like to read or watch in your free time?",
		Options: []AnswerContribution{
			{Text: "How-to and DIY content", RIASEC: []RIASECDelta{r(models.Realistic, 15)}},
			{Text: "Science documentaries", RIASEC: []RIASECDelta{r(models.Investigative, 15)}},
			{Text: "Novels, films, and music reviews", RIASEC: []RIASECDelta{r(models.Artistic, 15)}},
			{Text: "Stories about people making a difference", RIASEC: []RIASECDelta{r(models.Social, 15)}},
			{Text: "Biographies of entrepreneurs", RIASEC: []RIASECDelta{r(models.Enterprising, 15)}},
			{Text: "Guides on personal finance and planning", RIASEC: []RIASECDelta{r(models.Conventional, 15)}},
		},
	},
	{
		ID: "q8", Kind: KindInterest,
		Prompt: "Which role would you take in a new club?",
		Options: []AnswerContribution{
			{Text: "Setting up the equipment", RIASEC: []RIASECDelta{r(models.Realistic, 15)}},
			{Text: "Researching what the club should do", RIASEC: []RIASECDelta{r(models.Investigative, 15)}},
			{Text: "Creating the logo and social posts", RIASEC: []RIASECDelta{r(models.Artistic, 15)}},
			{Text: "Welcoming new members", RIASEC: []RIASECDelta{r(models.Social, 15)}},
			{Text: "Leading the team as president", RIASEC: []RIASECDelta{r(models.Enterprising, 20)}, TeamSize: team(models.TeamLeader)},
			{Text: "Keeping the minutes and the budget", RIASEC: []RIASECDelta{r(models.Conventional, 15)}},
		},
	},
	{
		ID: "q9", Kind: KindValue,
		Prompt: "What matters most to you in a future job?",
		Options: []AnswerContribution{
			{Text: "Making a positive impact", Values: []ValueDelta{v(models.Impact, 30)}},
			{Text: "Earning a high income", Values: []ValueDelta{v(models.Income, 30)}},
			{Text: "Being my own boss", Values: []ValueDelta{v(models.Autonomy, 30)}},
			{Text: "Having time for life outside work", Values: []ValueDelta{v(models.Balance, 30)}},
			{Text: "Always learning something new", Values: []ValueDelta{v(models.Growth, 30)}},
			{Text: "Knowing my job is secure", Values: []ValueDelta{v(models.Stability, 30)}},
		},
	},
	{
		ID: "q10", Kind: KindValue,
		Prompt: "Which trade-off would you accept?",
		Options: []AnswerContribution{
			{Text: "Less pay for more meaningful work", Values: []ValueDelta{v(models.Impact, 20), v(models.Balance, 5)}},
			{Text: "Long hours for a bigger paycheck", Values: []ValueDelta{v(models.Income, 20), v(models.Growth, 10)}},
			{Text: "Less security for more freedom", Values: []ValueDelta{v(models.Autonomy, 20)}},
			{Text: "Slower promotion for more family time", Values: []ValueDelta{v(models.Balance, 20), v(models.Stability, 10)}},
			{Text: "A harder path with more to learn", Values: []ValueDelta{v(models.Growth, 20)}},
			{Text: "A predictable role with fewer surprises", Values: []ValueDelta{v(models.Stability, 20)}},
		},
	},
	{
		ID: "q11", Kind: KindEnvironment,
		Prompt: "How do you prefer to work?",
		Options: []AnswerContribution{
			{Text: "Completely on my own", TeamSize: team(models.TeamSolo)},
			{Text: "Independently with occasional check-ins", TeamSize: team(models.TeamIndependent)},
			{Text: "With a small close-knit team", TeamSize: team(models.TeamSmall)},
			{Text: "In a large organization", TeamSize: team(models.TeamLarge)},
			{Text: "Leading other people", TeamSize: team(models.TeamLeader)},
			{Text: "With as little interaction as possible", TeamSize: team(models.TeamMinimal)},
		},
	},
	{
		ID: "q12", Kind: KindEnvironment,
		Prompt: "What work pace suits you best?",
		Options: []AnswerContribution{
			{Text: "Steady and consistent", Pace: pace(models.PaceSteady)},
			{Text: "A moderate mix of busy and calm", Pace: pace(models.PaceModerate)},
			{Text: "Fast and intense", Pace: pace(models.PaceIntense)},
			{Text: "Flexible, on my own schedule", Pace: pace(models.PaceFlexible)},
			{Text: "Driven by deadlines", Pace: pace(models.PaceDeadlineDriven)},
			{Text: "Predictable from day to day", Pace: pace(models.PacePredictable)},
		},
	},
}

var questionIndex = func() map[string]int {
	idx := make(map[string]int, len(AssessmentQuestions))
	for i, q := range AssessmentQuestions {
		idx[q.ID] = i
	}
	return idx
}()

// Contribution looks up the scoring entry for an answer. ok is false for an
// unknown question id or an out-of-range option.
func Contribution(questionID string, option int) (AnswerContribution, bool) {
	i, exists := questionIndex[questionID]
	if !exists {
		return AnswerContribution{}, false
	}
	opts := AssessmentQuestions[i].Options
	if option < 0 || option >= len(opts) {
		return AnswerContribution{}, false
	}
	return opts[option], true
}
