package language

import (
	"fmt"
	"sort"
	"strings"
)

// Type is a generation type accepted by the generator service
type Type string

const (
	Client        Type = "client"
	Server        Type = "server"
	Documentation Type = "documentation"
	Config        Type = "config"
)

// Types lists the known generation types in display order
var Types = []Type{Client, Server, Documentation, Config}

// ParseType matches s against the known types, ignoring case
func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

type Language struct {
	Name  string
	Types []Type
}

// Supports reports whether the language can be generated as t
func (l *Language) Supports(t Type) bool {
	for _, lt := range l.Types {
		if lt == t {
			return true
		}
	}
	return false
}

// Languages is the catalog of Swagger Generator 3 languages
var Languages = []Language{
	// clients
	{Name: "csharp", Types: []Type{Client}},
	{Name: "csharp-dotnet2", Types: []Type{Client}},
	{Name: "dart", Types: []Type{Client}},
	{Name: "go", Types: []Type{Client}},
	{Name: "java", Types: []Type{Client}},
	{Name: "javascript", Types: []Type{Client}},
	{Name: "jaxrs-cxf-client", Types: []Type{Client}},
	{Name: "kotlin-client", Types: []Type{Client}},
	{Name: "php", Types: []Type{Client}},
	{Name: "python", Types: []Type{Client}},
	{Name: "r", Types: []Type{Client}},
	{Name: "ruby", Types: []Type{Client}},
	{Name: "scala", Types: []Type{Client}},
	{Name: "swift3", Types: []Type{Client}},
	{Name: "swift4", Types: []Type{Client}},
	{Name: "swift5", Types: []Type{Client}},
	{Name: "typescript-angular", Types: []Type{Client}},
	{Name: "typescript-axios", Types: []Type{Client}},
	{Name: "typescript-fetch", Types: []Type{Client}},

	// servers
	{Name: "aspnetcore", Types: []Type{Server}},
	{Name: "go-server", Types: []Type{Server}},
	{Name: "inflector", Types: []Type{Server}},
	{Name: "java-vertx", Types: []Type{Server}},
	{Name: "jaxrs-cxf", Types: []Type{Server}},
	{Name: "jaxrs-cxf-cdi", Types: []Type{Server}},
	{Name: "jaxrs-di", Types: []Type{Server}},
	{Name: "jaxrs-jersey", Types: []Type{Server}},
	{Name: "jaxrs-resteasy", Types: []Type{Server}},
	{Name: "jaxrs-resteasy-eap", Types: []Type{Server}},
	{Name: "jaxrs-spec", Types: []Type{Server}},
	{Name: "kotlin-server", Types: []Type{Server}},
	{Name: "micronaut", Types: []Type{Server}},
	{Name: "nodejs-server", Types: []Type{Server}},
	{Name: "python-flask", Types: []Type{Server}},
	{Name: "scala-akka-http-server", Types: []Type{Server}},
	{Name: "spring", Types: []Type{Server}},

	// documentation
	{Name: "dynamic-html", Types: []Type{Documentation}},
	{Name: "html", Types: []Type{Documentation}},
	{Name: "html2", Types: []Type{Documentation}},
	{Name: "openapi", Types: []Type{Documentation}},
	{Name: "openapi-yaml", Types: []Type{Documentation}},
}

// ByName returns the language config by name
func ByName(name string) *Language {
	for i, lang := range Languages {
		if lang.Name == name {
			return &Languages[i]
		}
	}
	return nil
}

// ByType returns the names of languages supporting t, sorted
func ByType(t Type) []string {
	var names []string
	for _, lang := range Languages {
		if lang.Supports(t) {
			names = append(names, lang.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Check returns warnings for a lang/type pair the catalog does not know.
// The service remains the authority, so nothing here is fatal.
func Check(lang, genType string) []string {
	var warnings []string

	t, typeOK := ParseType(genType)
	if !typeOK && genType != "" {
		warnings = append(warnings, fmt.Sprintf("unknown generation type %q", genType))
	}

	l := ByName(lang)
	switch {
	case l == nil && lang != "":
		warnings = append(warnings, fmt.Sprintf("unknown language %q", lang))
	case l != nil && typeOK && !l.Supports(t):
		warnings = append(warnings, fmt.Sprintf("language %q does not list type %q", lang, t))
	}

	return warnings
}
