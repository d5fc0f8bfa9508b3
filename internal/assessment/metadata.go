package assessment

import "strconv"

// Level is one row of the sentiment heatmap.
type Level struct {
	ID          int
	Name        string
	Description string
}

// Category is one column of the sentiment heatmap.
type Category struct {
	ID          int
	Name        string
	ShortName   string
	Description string
}

// SentimentLevels are the five rows of the heatmap, ordered by ID.
var SentimentLevels = []Level{
	{1, "Personal Workflow Preferences", "Preferences about AI in personal workflows"},
	{2, "Collaboration & Role Adjustments", "Collaboration and team adaptation issues"},
	{3, "Professional Trust & Fairness Issues", "Concerns about fairness, trust, and transparency"},
	{4, "Career Security & Job Redefinition Anxiety", "Job change and career risk concerns"},
	{5, "Organizational Stability at Risk", "Organizational risk and instability due to AI"},
}

// SentimentCategories are the five columns of the heatmap, ordered by ID.
var SentimentCategories = []Category{
	{1, "AI is too Autonomous", "Too Autonomous", "Concern about AI acting without enough human control"},
	{2, "AI is too Inflexible", "Too Inflexible", "Concern that AI lacks flexibility or adaptability"},
	{3, "AI is Emotionless", "Emotionless", "Perception that AI lacks emotional intelligence"},
	{4, "AI is too Opaque", "Too Opaque", "Concern about transparency of AI decisions"},
	{5, "People Prefer Human Interaction", "Prefer Human", "Preference for human empathy and communication"},
}

// CellID identifies one (level, category) pair, e.g. "L3_C4".
func CellID(levelID, categoryID int) string {
	return "L" + strconv.Itoa(levelID) + "_C" + strconv.Itoa(categoryID)
}

// SentimentField names a raw respondent measurement column, sentiment_1..sentiment_25.
type SentimentField string

// SentimentFieldFor maps a (level, category) cell to its respondent column.
// Cells are laid out row by row: level 1 holds sentiment_1..5, level 2
// holds sentiment_6..10, and so on.
func SentimentFieldFor(levelID, categoryID int) SentimentField {
	n := (levelID-1)*len(SentimentCategories) + categoryID
	return SentimentField("sentiment_" + strconv.Itoa(n))
}

// SentimentFields lists all 25 measurement columns in cell order.
func SentimentFields() []SentimentField {
	fields := make([]SentimentField, 0, len(SentimentLevels)*len(SentimentCategories))
	for _, l := range SentimentLevels {
		for _, c := range SentimentCategories {
			fields = append(fields, SentimentFieldFor(l.ID, c.ID))
		}
	}
	return fields
}

// Color bands derived from a cell's relative rank.
const (
	ColorTop3    = "#15803d" // least resistance
	ColorTop8    = "#84cc16"
	ColorMiddle  = "#fcd34d"
	ColorBottom8 = "#fb923c"
	ColorBottom3 = "#dc2626" // most resistance
	ColorNoData  = "#6b7280"
)

// CellDescriptions carries the static drill-down text per cell.
var CellDescriptions = map[string]string{
	"L1_C1": "Concerns about AI autonomy affecting personal work preferences and control",
	"L1_C2": "Frustration with AI inflexibility in adapting to individual work styles",
	"L1_C3": "Discomfort with lack of emotional understanding in personal AI interactions",
	"L1_C4": "Uncertainty about how AI assists personal workflows due to lack of transparency",
	"L1_C5": "Preference for human interaction over AI in personal work contexts",

	"L2_C1": "Concerns about autonomous AI disrupting team collaboration and roles",
	"L2_C2": "Issues with AI rigidity affecting team flexibility and adaptation",
	"L2_C3": "Missing emotional intelligence in AI-mediated collaboration",
	"L2_C4": "Lack of clarity about AI impact on team roles and responsibilities",
	"L2_C5": "Strong preference for human interaction in collaborative settings",

	"L3_C1": "Trust concerns about autonomous AI decisions affecting professional fairness",
	"L3_C2": "AI inflexibility undermining professional judgment and standards",
	"L3_C3": "Emotionless AI affecting professional relationships and trust",
	"L3_C4": "Opacity of AI creating fairness and accountability concerns",
	"L3_C5": "Need for human judgment in maintaining professional trust",

	"L4_C1": "Career anxiety from AI autonomy in job-redefining decisions",
	"L4_C2": "Concern that inflexible AI limits career growth and adaptation",
	"L4_C3": "Job insecurity amplified by emotionless AI replacement",
	"L4_C4": "Uncertainty about career impact due to opaque AI transformation",
	"L4_C5": "Desire for human guidance during career transitions with AI",

	"L5_C1": "Organizational risk from uncontrolled autonomous AI systems",
	"L5_C2": "Organizational vulnerability due to inflexible AI infrastructure",
	"L5_C3": "Company culture damage from emotionless AI implementation",
	"L5_C4": "Systemic organizational risk from opaque AI decision-making",
	"L5_C5": "Organizational stability threatened by loss of human connection",
}

// Dimension is one of the eight capability areas.
type Dimension struct {
	ID          int
	Name        string
	Description string
	Constructs  []int
}

// Construct is a sub-indicator within a capability dimension.
type Construct struct {
	ID          int
	DimensionID int
	Name        string
}

// CapabilityDimensions lists all eight dimensions, ordered by ID.
var CapabilityDimensions = []Dimension{
	{1, "Strategy and Vision",
		"An organization that scores high on Strategy and Vision drives AI initiatives aligned with core business objectives, supported by strong leadership commitment, clear long-term vision for sustainable AI transformation, and well-defined resource allocation strategies.",
		[]int{1, 2, 3, 4}},
	{2, "Data",
		"An organization that scores high on Data ensures exceptional data quality, making reliable, trustworthy data accessible for all functions. It has robust governance framework that guarantees realtime insights, advanced analyses, and strategic, data-driven decisions.",
		[]int{5, 6, 7, 8}},
	{3, "Technology",
		"An organization that scores high on Technology makes use of advanced AI tools and platforms, ensures scalability for future growth, and is well-prepared. It makes use of optimized cloud and on-premises solutions tailored to business needs. Seamless integration between systems and processes ensures efficient, innovative, and sustainable AI-driven improvements.",
		[]int{9, 10, 11, 12}},
	{4, "Talent and Skills",
		"An organization that scores high on Talent and Skills ensures advanced AI expertise and invests heavily in ongoing training. It promotes a culture ready for AI integration and stimulates cross-functional collaboration on AI initiatives, driving innovation and organizational transformation.",
		[]int{13, 14, 15, 16}},
	{5, "Organisation and Processes",
		"An organization that scores high on Organisation and Processes has AI deeply embedded in its organizational structure, supported by robust decision-making framework and strategic alignment. Processes are seamlessly integrated and optimized with AI, AI-enabled decision-making drives continuous improvement and data-driven strategies.",
		[]int{17, 18, 19, 20}},
	{6, "Innovation",
		"An organization that scores high on Innovation promotes a culture of experimentation, active prototyping and testing of AI solutions. It invests significantly in R&D, accelerates implementation of AI, and empowers leadership to stimulate innovation. This drives rapid acceptance of advanced technologies and a lasting competitive advantage through AI-based, customer-centric products and services.",
		[]int{21, 22, 23, 24}},
	{7, "Adaptation & Adoption",
		"An organization that scores high on Adaptation & Adoption is acutely aware that effective use of AI requires systematic updating of tools and processes to ensure employees can use them as intended. It also adapts to the situation by training employees on best practices and experimenting with AI work methods among teams.",
		[]int{25, 26, 27, 28}},
	{8, "Ethics and Responsibility",
		"An organization that scores high on Ethics and Responsibility implements robust ethical AI framework that ensures fairness, transparency, and accountability in AI systems. It prioritizes preventing biases, maintains strict standards for data privacy and security, and complies with privacy regulations. It ensures transparency and accountability and manages legal compliance, organizes ethical review processes and legally verifiable actions around AI-powered processes and decisions.",
		[]int{29, 30, 31, 32}},
}

// CapabilityConstructs lists all 32 constructs, ordered by ID.
var CapabilityConstructs = []Construct{
	{1, 1, "Alignment with Business Goals"},
	{2, 1, "Leadership Commitment"},
	{3, 1, "Long-Term Vision"},
	{4, 1, "Resource Allocation"},

	{5, 2, "Data Quality"},
	{6, 2, "Data Accessibility"},
	{7, 2, "Data Governance Framework"},
	{8, 2, "Data Integration"},

	{9, 3, "AI Tools and Platforms"},
	{10, 3, "Scalability"},
	{11, 3, "Cloud vs. On-Premises Solutions"},
	{12, 3, "Integration and Optimization"},

	{13, 4, "AI Skills and Expertise"},
	{14, 4, "Training and Development"},
	{15, 4, "Recruitment and Team Formation"},
	{16, 4, "Cross-Functional Collaboration"},

	{17, 5, "AI Governance and Structure"},
	{18, 5, "Process Integration and Optimization"},
	{19, 5, "Change Management"},
	{20, 5, "AI-Driven Decision Optimization"},

	{21, 6, "Prototyping and Experimentation"},
	{22, 6, "Products and Services"},
	{23, 6, "Speed of Implementation"},
	{24, 6, "Innovation Culture and Leadership"},

	{25, 7, "Tool Adoption"},
	{26, 7, "Job Redesign"},
	{27, 7, "Employee Engagement"},
	{28, 7, "Confidence/Authority"},

	{29, 8, "Ethical AI Framework"},
	{30, 8, "Bias and Fairness"},
	{31, 8, "Transparency and Explainability"},
	{32, 8, "Data Privacy and Security"},
}

// CapabilityField names a raw respondent measurement column, construct_1..construct_32.
type CapabilityField string

// CapabilityFieldFor maps a construct ID to its respondent column.
func CapabilityFieldFor(constructID int) CapabilityField {
	return CapabilityField("construct_" + strconv.Itoa(constructID))
}

// ConstructsForDimension returns the constructs belonging to one dimension.
func ConstructsForDimension(dimensionID int) []Construct {
	out := make([]Construct, 0, 4)
	for _, c := range CapabilityConstructs {
		if c.DimensionID == dimensionID {
			out = append(out, c)
		}
	}
	return out
}

// DimensionByID returns the dimension with the given ID, or nil.
func DimensionByID(id int) *Dimension {
	for i := range CapabilityDimensions {
		if CapabilityDimensions[i].ID == id {
			return &CapabilityDimensions[i]
		}
	}
	return nil
}
