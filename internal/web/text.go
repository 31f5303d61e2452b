package web

var (
	SiteTitle = "Venture Portfolio"

	Headline = `Building companies at the edge of what's possible.`

	AboutMe = `I have spent the last decade starting, scaling and selling companies across health,
	artificial intelligence, advanced materials and software. Some ideas became products used by
	millions, some became acquisitions, and a few became very expensive lessons.
	Today I split my time between the ventures below and the founders I back, helping teams find
	the shortest path from a rough prototype to a business that lasts.`

	PortfolioIntro = `Every venture I have founded or co-founded, from first sketch to exit.
	Search by name or idea, narrow by sector and stage, and sort however you like.`

	EmptyState = "No ventures found matching your criteria"
)
