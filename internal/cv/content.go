package cv

// Number of timeline entries and certifications in every document.
const (
	TimelineEntries = 3
	Certifications  = 3
)

// SkillCategory is a skills block. Its label is translated; its items are not.
type SkillCategory struct {
	Key      string
	Fallback string
	Items    []string
}

// SkillCategories lists the six categories in document order.
var SkillCategories = []SkillCategory{
	{Key: "frontend", Fallback: "Front-End", Items: []string{"HTML5", "CSS3", "JavaScript", "React", "Vue.js", "Tailwind CSS"}},
	{Key: "backend", Fallback: "Back-End", Items: []string{"Node.js", "Express", "Go", "PHP", "Laravel", "REST APIs"}},
	{Key: "databases", Fallback: "Databases", Items: []string{"PostgreSQL", "MySQL", "MongoDB", "Redis"}},
	{Key: "devops", Fallback: "DevOps & Cloud", Items: []string{"Docker", "GitHub Actions", "Linux", "Nginx", "AWS"}},
	{Key: "tools", Fallback: "Tools", Items: []string{"Git", "VS Code", "Figma", "Postman", "Jira"}},
	{Key: "languages", Fallback: "Programming Languages", Items: []string{"JavaScript", "TypeScript", "Go", "Python", "Java", "C"}},
}
