package forwarder

import (
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"lines": func(s []string) string { return strings.Join(s, "\n") },
}

// inlineHeaderTpl renders the whole boundary into one header.
var inlineHeaderTpl = template.Must(template.New("inline.h").Funcs(funcs).Parse(`#pragma once
#include <memory>
#include "{{.Include}}"
{{- if .Namespace}}

namespace {{.Namespace}} {
{{- end}}

namespace {{.Detail}} {

// Hidden bridge (not part of public ABI)
class {{.Name}}Bridge {
public:
    explicit {{.Name}}Bridge(std::unique_ptr<{{.Name}}>&& impl)
        : impl_(std::move(impl)) {}

{{lines .Members.BridgeInline}}

private:
    std::unique_ptr<{{.Name}}> impl_;
};

} // namespace {{.Detail}}

// Proxy implementing {{.Name}}
class {{.Name}}Proxy : public {{.Name}} {
public:
    explicit {{.Name}}Proxy(std::unique_ptr<{{.Detail}}::{{.Name}}Bridge>&& bridge)
        : bridge_(std::move(bridge)) {}

{{lines .Members.Proxy}}

private:
    std::unique_ptr<{{.Detail}}::{{.Name}}Bridge> bridge_;
};

// Inline factory (header-only)
inline std::unique_ptr<{{.Name}}> CreateStable{{.Name}}(std::unique_ptr<{{.Name}}>&& impl) {
    auto bridge = std::make_unique<{{.Detail}}::{{.Name}}Bridge>(std::move(impl));
    return std::make_unique<{{.Name}}Proxy>(std::move(bridge));
}
{{- if .Namespace}}

} // namespace {{.Namespace}}
{{- end}}
`))

// splitHeaderTpl declares the bridge and factory; their definitions live in
// the companion source so the bridge can change without touching callers.
var splitHeaderTpl = template.Must(template.New("split.h").Funcs(funcs).Parse(`#pragma once
#include <memory>
#include "{{.Include}}"
{{- if .Namespace}}

namespace {{.Namespace}} {
{{- end}}

namespace {{.Detail}} {

// Hidden bridge (not part of public ABI), defined in {{.SourceFile}}
class {{.Name}}Bridge {
public:
    explicit {{.Name}}Bridge(std::unique_ptr<{{.Name}}>&& impl);
    ~{{.Name}}Bridge();

{{lines .Members.BridgeDecls}}

private:
    std::unique_ptr<{{.Name}}> impl_;
};

} // namespace {{.Detail}}

// Proxy implementing {{.Name}}
class {{.Name}}Proxy : public {{.Name}} {
public:
    explicit {{.Name}}Proxy(std::unique_ptr<{{.Detail}}::{{.Name}}Bridge>&& bridge)
        : bridge_(std::move(bridge)) {}

{{lines .Members.Proxy}}

private:
    std::unique_ptr<{{.Detail}}::{{.Name}}Bridge> bridge_;
};

// Factory, defined in {{.SourceFile}}
std::unique_ptr<{{.Name}}> CreateStable{{.Name}}(std::unique_ptr<{{.Name}}>&& impl);
{{- if .Namespace}}

} // namespace {{.Namespace}}
{{- end}}
`))

var splitSourceTpl = template.Must(template.New("split.cpp").Funcs(funcs).Parse(`#include <memory>
#include "{{.HeaderFile}}"
{{- if .Namespace}}

namespace {{.Namespace}} {
{{- end}}

namespace {{.Detail}} {

{{.Name}}Bridge::{{.Name}}Bridge(std::unique_ptr<{{.Name}}>&& impl)
    : impl_(std::move(impl)) {}

{{.Name}}Bridge::~{{.Name}}Bridge() = default;

{{lines .Members.BridgeDefs}}

} // namespace {{.Detail}}

std::unique_ptr<{{.Name}}> CreateStable{{.Name}}(std::unique_ptr<{{.Name}}>&& impl) {
    auto bridge = std::make_unique<{{.Detail}}::{{.Name}}Bridge>(std::move(impl));
    return std::make_unique<{{.Name}}Proxy>(std::move(bridge));
}
{{- if .Namespace}}

} // namespace {{.Namespace}}
{{- end}}
`))
