package editor

import "strings"

type TemplateKind string

const (
	TemplateProject    TemplateKind = "project"
	TemplateExperience TemplateKind = "experience"
	TemplateEducation  TemplateKind = "education"
	TemplateSkill      TemplateKind = "skill"
	TemplateDefault    TemplateKind = "default"
)

var templateFragments = map[TemplateKind]string{
	TemplateProject: `
<div class="bg-white dark:bg-gray-800 rounded-lg shadow-md overflow-hidden">
  <img src="/placeholder.svg?height=200&width=400" alt="Project Image" class="w-full h-48 object-cover" />
  <div class="p-6">
    <h3 class="text-xl font-semibold mb-2">New Project</h3>
    <p class="text-gray-600 dark:text-gray-400 mb-4">Project description goes here. Click to edit this text.</p>
    <div class="flex flex-wrap gap-2 mb-4">
      <span class="px-3 py-1 bg-primary/10 text-primary rounded-full text-xs font-medium">Tag 1</span>
      <span class="px-3 py-1 bg-primary/10 text-primary rounded-full text-xs font-medium">Tag 2</span>
    </div>
    <a href="#" class="inline-flex items-center text-primary hover:underline">View Project</a>
  </div>
</div>`,
	TemplateExperience: `
<div class="flex">
  <div class="hidden md:block w-1/5 pr-8 text-right">
    <span class="text-sm font-semibold text-gray-500 dark:text-gray-400">2023 - Present</span>
  </div>
  <div class="relative w-full md:w-4/5 pl-8 border-l-2 border-primary">
    <div class="absolute -left-[9px] top-0 w-4 h-4 rounded-full bg-primary"></div>
    <span class="inline-block md:hidden text-sm font-semibold text-gray-500 dark:text-gray-400 mb-2">2023 - Present</span>
    <h4 class="text-xl font-semibold text-gray-900 dark:text-white">New Position</h4>
    <p class="text-gray-600 dark:text-gray-400 mb-3">Company Name</p>
    <p class="text-gray-700 dark:text-gray-300">Job description goes here. Click to edit this text.</p>
  </div>
</div>`,
	TemplateEducation: `
<div class="bg-white dark:bg-gray-800 rounded-xl shadow-sm p-6 transition-all hover:shadow-md">
  <h4 class="text-xl font-semibold text-gray-900 dark:text-white mb-2">Degree Name</h4>
  <p class="text-gray-600 dark:text-gray-400 mb-4">University Name | 2023</p>
  <p class="text-gray-700 dark:text-gray-300">Description or achievements. Click to edit this text.</p>
</div>`,
	TemplateSkill:   `<span class="px-4 py-2 bg-primary/10 text-primary rounded-full text-sm font-medium">New Skill</span>`,
	TemplateDefault: `<div class="p-4 border rounded-md">New content. Click to edit.</div>`,
}

// TemplateKinds lists the catalog in display order.
func TemplateKinds() []TemplateKind {
	return []TemplateKind{TemplateProject, TemplateExperience, TemplateEducation, TemplateSkill, TemplateDefault}
}

// Fragment returns the markup for kind; unknown kinds get the default block.
func Fragment(kind TemplateKind) string {
	if f, ok := templateFragments[kind]; ok {
		return strings.TrimSpace(f)
	}
	return templateFragments[TemplateDefault]
}
