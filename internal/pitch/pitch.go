// Package pitch holds the landing page copy shared by the terminal demo and
// the website.
package pitch

const (
	Product      = "BuildVision"
	Tagline      = "The one place every MEP professional needs."
	Badge        = "MEP Platform"
	AssistantTag = "Atlas — BuildVision AI"
	EmptyPrompt  = "Ask anything about MEP equipment, codes, or manufacturers."
	Placeholder  = "Ask about equipment, specs, or codes…"
	LoadingLine  = "Searching 28,000+ documents…"
	StatsNote    = "28,000+ manufacturer documents · 73 manufacturers · Real answers from real data"
	ContactEmail = "ben@buildvision.io"
)

var presets = []string{
	"I need a 200-ton chiller for a hospital",
	"Compare Greenheck vs Nortek air handling units",
	"What are the code requirements for smoke control?",
	"Which VRF systems support heat recovery?",
}

// Presets returns the suggested demo questions.
func Presets() []string {
	return append([]string(nil), presets...)
}

// Item is a labelled line of copy with an optional detail.
type Item struct {
	Icon   string
	Label  string
	Detail string
}

// Audience is one side of the marketplace in the how-it-works flow.
type Audience struct {
	Badge   string
	Title   string
	Items   []Item
	Closing string
}

// Flow describes the how-it-works section top to bottom.
type Flow struct {
	Title    string
	Subtitle string
	Intake   []Item
	CoreName string
	Core     []Item
	Free     Audience
	Paid     Audience
	Loop     Item
}

// HowItWorks returns the how-it-works flow.
func HowItWorks() Flow {
	return Flow{
		Title:    "How It Works",
		Subtitle: "Every piece of equipment data flows through one platform. Engineers get the best answers. Manufacturers get the best customers.",
		Intake: []Item{
			{Icon: "💬", Label: "Equipment Queries", Detail: `"I need a 200-ton chiller for a hospital"`},
			{Icon: "📐", Label: "Construction Plans", Detail: "Upload drawings, get equipment recs"},
			{Icon: "📧", Label: "Email Forwarding", Detail: "Forward rep emails → auto-extract specs"},
			{Icon: "📋", Label: "Code Questions", Detail: "ASHRAE, IECC, smoke control, ventilation"},
			{Icon: "🔍", Label: "Product Search", Detail: "Compare specs across manufacturers"},
		},
		CoreName: "BuildVision Atlas",
		Core: []Item{
			{Icon: "🧠", Label: "AI Processing", Detail: "RAG across 28K+ docs from 73 manufacturers. Every answer cites its source."},
			{Icon: "📊", Label: "Data Extraction", Detail: "Specs, capacities, efficiency ratings, model numbers structured from submittals & catalogs."},
			{Icon: "🏗️", Label: "Intent Matching", Detail: "Understands project context. Matches requirements to products. Routes interest to the right manufacturer."},
		},
		Free: Audience{
			Badge: "Free",
			Title: "Engineers & Contractors",
			Items: []Item{
				{Label: "Equipment answers", Detail: "Sourced from real manufacturer data"},
				{Label: "Code compliance", Detail: "ASHRAE, IECC, building codes"},
				{Label: "Spec comparisons", Detail: "Side-by-side across manufacturers"},
				{Label: "Rep contacts", Detail: "Who covers your territory"},
				{Label: "Plan analysis", Detail: "Upload drawings → equipment list"},
				{Label: "Email integration", Detail: "Forward rep quotes → auto-organize"},
			},
			Closing: "~90,000 MEP engineers in the US. Become the tool they can't work without.",
		},
		Paid: Audience{
			Badge: "Paid",
			Title: "Manufacturers & Reps",
			Items: []Item{
				{Label: "Qualified leads", Detail: "Engineers actively specifying your equipment"},
				{Label: "Visibility", Detail: "Your products surface when engineers search"},
				{Label: "Market intelligence", Detail: "What engineers ask about, what they compare"},
				{Label: "Content placement", Detail: "Your specs, case studies, and submittals featured"},
				{Label: "Territory mapping", Detail: "Route leads to the right local rep"},
				{Label: "Competitive insight", Detail: "Know when you're being compared, and to whom"},
			},
			Closing: "Modeled on OpenEvidence: free for practitioners, funded by the industry. $70–$150+ CPM at scale.",
		},
		Loop: Item{
			Icon:   "💰",
			Label:  "Revenue Model",
			Detail: "Manufacturers pay for visibility & leads → BuildVision stays free for engineers → more engineers → more value for manufacturers",
		},
	}
}
