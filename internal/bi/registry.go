// Package bi serves the static registry of embedded business
// intelligence dashboards.
package bi

import "sort"

// Report describes one embeddable dashboard.
type Report struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IframeSrc   string   `json:"iframe_src"`
}

// Reports returns the central report registry. Static for now; easy to
// move into the database later.
func Reports() []Report {
	return []Report{
		{
			Title:       "Business 360",
			Description: "Executive 360° view of business performance with high-level KPIs and drilldowns.",
			Category:    "Executive",
			Tags:        []string{"KPIs", "360"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiZDdlNzRmODQtNGFkNi00OTMxLThiMDItMTQxMzU3MjE1NDkzIiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "Workflow Analysis",
			Description: "Daily workflow visibility and operational bottleneck analysis.",
			Category:    "Operations",
			Tags:        []string{"Workflow", "Daily"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiNGNmOTk1OGItYmQxMi00ZDMwLTgzNmYtODAxYTNkMjcxYmYxIiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "Workflow Analysis (Allowed Amount)",
			Description: "Workflow + allowed amount to connect operational activity to financial impact.",
			Category:    "Operations",
			Tags:        []string{"Allowed $", "Workflow"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiZTdkNGIyNDgtNTBhOS00ZDcxLWI1ZmItYjdlMGFiOWRjZjE5IiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "Call Analysis",
			Description: "Inbound call analytics to improve staffing, response time, and call outcomes.",
			Category:    "Contact Center",
			Tags:        []string{"Calls", "Inbound"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiNWQ1OWU4ZTAtM2UwZS00MThiLTk5ODQtMGJjN2FjMzk3Y2Y0IiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "True Upcare",
			Description: "Opportunity dashboard to identify growth levers, gaps, and actionable next steps.",
			Category:    "Growth",
			Tags:        []string{"Opportunity", "Growth"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiMjllNmFiZjMtZGIwMy00YTgxLThiOTQtMGI4YTdhMTJjNzhiIiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "Inventory Optimization",
			Description: "Reduce stockouts, improve turns, and right-size purchasing.",
			Category:    "Supply Chain",
			Tags:        []string{"Inventory", "Optimization"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiOTIzYzA3OWItNzAxMC00MGUwLWI3MWMtY2JjNDVmZWNlY2RmIiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "Delivery Optimization",
			Description: "Routing efficiency + driver monitoring for performance management.",
			Category:    "Logistics",
			Tags:        []string{"Delivery", "Drivers"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiYzdhMDdiZDYtZDJlMi00YjkzLWI4NWQtMGUzZTY2ZjIzZTA0IiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "Expire Prescription Retrieval",
			Description: "Identify expiring prescriptions and recovery opportunities.",
			Category:    "Clinical Ops",
			Tags:        []string{"Rx", "Retrieval"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiNmY2ZTkxYWYtYTJkNy00OGYxLWJkMzktYmRmZWQwMzNiZmIyIiwidCI6IjdkODViMzVjLTg3MmUtNDA1NS1hZjkyLTgwZmI3YzlmOTRiNCIsImMiOjF9",
		},
		{
			Title:       "Templates Resupply",
			Description: "Template dashboard (demo) to standardize and accelerate reporting.",
			Category:    "Templates",
			Tags:        []string{"Template", "Resupply"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiZTY2ZWQ2NTUtMmNkMy00MjkxLWIzODQtMThhMzc0N2VjZjI3IiwidCI6IjY2ZTU0MjFhLTIwNzYtNDQyYS04MDc1LTFjMTQyMzliNDg3NyJ9",
		},
		{
			Title:       "Maximum Gross Potential",
			Description: "Quantify upside and prioritize action areas for leadership.",
			Category:    "Executive",
			Tags:        []string{"MGP", "Opportunity"},
			IframeSrc:   "https://app.powerbi.com/view?r=eyJrIjoiZmU3M2M5Y2QtZGQwMS00ODhjLWI0ZWYtM2FjODAzNmUxZWMzIiwidCI6IjY2ZTU0MjFhLTIwNzYtNDQyYS04MDc1LTFjMTQyMzliNDg3NyJ9",
		},
	}
}

// Categories returns the sorted, de-duplicated category list. Reports
// without a category land under "Other".
func Categories(reports []Report) []string {
	seen := make(map[string]bool)
	for _, r := range reports {
		cat := r.Category
		if cat == "" {
			cat = "Other"
		}
		seen[cat] = true
	}

	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}
