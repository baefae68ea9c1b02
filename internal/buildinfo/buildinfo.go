package buildinfo

const (
	ProjectName    = "quiz"
	ProjectVersion = "v0.1.0"
	GithubURL      = "https://github.com/bloops-games/quiz"
)

const Graffiti = `
  ____        _     
 / __ \__  __(_)___ 
/ / / / / / / /_  / 
/ /_/ / /_/ / / / /_ 
\___\_\__,_/_/ /___/ 
`

// GreetingCLI expects the project name, version and repository url.
const GreetingCLI = `
%s %s
Source code: %s

`
