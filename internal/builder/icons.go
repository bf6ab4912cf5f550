package builder

import "github.com/gourav132/Show-IT/internal/domain/profile"

// Known skill names resolve to a hosted devicon image; anything else falls
// back to a generic glyph the client renders from its own icon set.
var skillIcons = map[string]profile.Icon{
	"JavaScript": {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/javascript/javascript-original.svg", Color: "#F7DF1E", Bg: "#F7DF1E20"},
	"TypeScript": {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/typescript/typescript-original.svg", Color: "#3178C6", Bg: "#3178C620"},
	"Python":     {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/python/python-original.svg", Color: "#3776AB", Bg: "#3776AB20"},
	"Java":       {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/java/java-original.svg", Color: "#ED8B00", Bg: "#ED8B0020"},
	"Go":         {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/go/go-original.svg", Color: "#00ADD8", Bg: "#00ADD820"},
	"Rust":       {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/rust/rust-plain.svg", Color: "#CE422B", Bg: "#CE422B20"},
	"React":      {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/react/react-original.svg", Color: "#61DAFB", Bg: "#61DAFB20"},
	"Vue.js":     {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/vuejs/vuejs-original.svg", Color: "#4FC08D", Bg: "#4FC08D20"},
	"Node.js":    {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/nodejs/nodejs-original.svg", Color: "#339933", Bg: "#33993320"},
	"PostgreSQL": {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/postgresql/postgresql-original.svg", Color: "#336791", Bg: "#33679120"},
	"MongoDB":    {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/mongodb/mongodb-original.svg", Color: "#47A248", Bg: "#47A24820"},
	"Docker":     {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/docker/docker-original.svg", Color: "#2496ED", Bg: "#2496ED20"},
	"Kubernetes": {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/kubernetes/kubernetes-plain.svg", Color: "#326CE5", Bg: "#326CE520"},
	"Redis":      {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/redis/redis-original.svg", Color: "#DC382D", Bg: "#DC382D20"},
	"Git":        {Kind: profile.IconImage, Src: "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/git/git-original.svg", Color: "#F05032", Bg: "#F0503220"},
}

func IconForSkill(name string) profile.Icon {
	if icon, ok := skillIcons[name]; ok {
		return icon
	}
	return profile.Icon{Kind: profile.IconGlyph, Glyph: "code", Color: "#3B82F6", Bg: "#3B82F620"}
}
