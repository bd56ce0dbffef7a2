package compile

import (
	"fmt"
	"strings"

	"instafolio/pkg/document"
)

const sitePage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s Projects Portfolio</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@100..900&display=swap" rel="stylesheet">
    <style>
        body {
            font-family: 'Inter', sans-serif;
            background-color: #0d1117;
        }
        .section-title {
            position: relative;
            padding-bottom: 0.5rem;
            margin-bottom: 1.5rem;
        }
        .section-title::after {
            content: '';
            position: absolute;
            left: 0;
            bottom: 0;
            height: 3px;
            width: 50px;
            background-color: #2563eb;
            border-radius: 9999px;
        }
    </style>
</head>
<body class="text-gray-200">
    <div id="app" class="max-w-4xl mx-auto p-4 sm:p-8 space-y-12">
%s
    </div>
</body>
</html>`

// Site compiles the document into a standalone, shareable portfolio page.
// It showcases the summary, skills, projects, and education; experience and
// the cover letter stay out of the public page.
func Site(doc *document.Document) (page string) {
	title := doc.Personal.Name
	if title == "" {
		title = "Student"
	}

	sections := []string{
		siteHeader(doc),
		siteAbout(doc),
		siteSkills(doc),
		siteProjects(doc),
		siteEducation(doc),
		siteFooter(doc),
	}

	page = fmt.Sprintf(sitePage, esc(title), strings.Join(sections, "\n\n"))
	return page
}

func siteHeader(doc *document.Document) (out string) {
	out = fmt.Sprintf(`        <header id="header" class="text-center p-6 bg-[#161b22] rounded-xl shadow-2xl">
            <h1 class="text-5xl font-extrabold text-blue-400 mb-2">%s</h1>
            <p class="text-xl text-gray-400 mb-4">Aspiring AI & Cloud Developer</p>
            <div class="flex flex-wrap justify-center space-x-4 text-sm">
                <a href="mailto:%s" class="text-blue-400 hover:text-blue-300 transition duration-200">📧 %s</a>
                <a href="%s" target="_blank" class="text-blue-400 hover:text-blue-300 transition duration-200">🔗 LinkedIn</a>
            </div>
        </header>`,
		esc(doc.Personal.Name), esc(doc.Personal.Email), esc(doc.Personal.Email),
		esc(doc.Personal.LinkedIn))
	return out
}

func siteAbout(doc *document.Document) (out string) {
	out = fmt.Sprintf(`        <section id="about">
            <h2 class="text-3xl font-bold text-gray-100 section-title">About Me</h2>
            <p class="text-lg leading-relaxed text-gray-400">%s</p>
        </section>`,
		esc(doc.Summary))
	return out
}

func siteSkills(doc *document.Document) (out string) {
	badges := make([]string, 0, len(doc.Skills))
	for _, skill := range doc.Skills {
		badges = append(badges, fmt.Sprintf(`<span class="px-4 py-2 bg-gray-700 text-blue-300 rounded-full text-sm font-medium shadow-md">%s</span>`, esc(skill)))
	}

	out = fmt.Sprintf(`        <section id="skills">
            <h2 class="text-3xl font-bold text-gray-100 section-title">Core Skills</h2>
            <div class="flex flex-wrap gap-3">
                %s
            </div>
        </section>`,
		strings.Join(badges, ""))
	return out
}

func siteProjects(doc *document.Document) (out string) {
	cards := make([]string, 0, len(doc.Portfolio))
	for _, proj := range doc.Portfolio {
		cards = append(cards, fmt.Sprintf(`                <div class="p-6 bg-[#161b22] border border-gray-700 rounded-xl">
                    <h3 class="text-xl font-semibold text-blue-400 mb-2">%s</h3>
                    <p class="text-gray-400 text-sm mb-4">%s</p>
                    <a href="%s" target="_blank" class="inline-block text-sm font-medium text-blue-500 hover:text-blue-400 transition duration-200 flex items-center">
                        View Project
                        <span class="ml-1">→</span>
                    </a>
                </div>`,
			esc(proj.Name), esc(proj.Description), esc(proj.Link)))
	}

	out = fmt.Sprintf(`        <section id="projects">
            <h2 class="text-3xl font-bold text-gray-100 section-title">Projects</h2>
            <div class="grid grid-cols-1 md:grid-cols-2 gap-6">
%s
            </div>
        </section>`,
		strings.Join(cards, "\n"))
	return out
}

func siteEducation(doc *document.Document) (out string) {
	cards := make([]string, 0, len(doc.Education))
	for _, edu := range doc.Education {
		cards = append(cards, fmt.Sprintf(`                <div class="p-4 bg-[#161b22] border border-gray-700 rounded-lg">
                    <div class="flex justify-between items-center mb-1">
                        <h3 class="text-lg font-semibold text-gray-200">%s</h3>
                        <span class="text-sm text-gray-500">%s</span>
                    </div>
                    <p class="text-md text-gray-400">%s</p>
                </div>`,
			esc(edu.Degree), esc(edu.Dates), esc(edu.Institution)))
	}

	out = fmt.Sprintf(`        <section id="education">
            <h2 class="text-3xl font-bold text-gray-100 section-title">Education</h2>
            <div class="space-y-4">
%s
            </div>
        </section>`,
		strings.Join(cards, "\n"))
	return out
}

func siteFooter(doc *document.Document) (out string) {
	out = fmt.Sprintf(`        <footer class="text-center text-sm text-gray-500 pt-6 border-t border-gray-700">
            <p>&copy; 2025 %s. Built with Instafolio.</p>
        </footer>`,
		esc(doc.Personal.Name))
	return out
}
