package views

// Class names from public/styles.css. They carry no meaning here beyond
// naming a visual treatment.
const (
	classLayoutOuter   = "layout_outer"
	classLayoutInner   = "layout_inner"
	classHeader        = "header"
	classHeaderContent = "headercontent"
	classAvatar        = "avatar"
	classMenu          = "menu"
	classClose         = "close"
	classDrawer        = "drawer"
	classSidebar       = "sidebar"
	classContent       = "content"
	classNavPanel      = "nav-panel"
	classNavTitle      = "nav-title"
	classNavList       = "nav-list"
	classNavEntry      = "nav-entry"
	classBlog          = "blog"
	classError         = "error-page"
)
