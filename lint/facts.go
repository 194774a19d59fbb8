// Copyright © 2025 The pysca authors

package lint

import "github.com/luthersystems/pysca/parser/pyast"

// facts accumulates identifier information in a single walk of the parsed
// tree.  Assigned variables and parameters deduplicate by name with the
// last occurrence winning its line, while first-insertion order is kept
// for reporting.  Mutable default findings deduplicate by def line.
type facts struct {
	vars       []*fact
	varIndex   map[string]int
	params     []*fact
	paramIndex map[string]int

	mutableLines []int
	mutableSeen  map[int]bool
}

type fact struct {
	name string
	line int
}

func newFacts() *facts {
	return &facts{
		varIndex:    make(map[string]int),
		paramIndex:  make(map[string]int),
		mutableSeen: make(map[int]bool),
	}
}

func (f *facts) recordVar(name string, line int) {
	if i, seen := f.varIndex[name]; seen {
		f.vars[i].line = line
		return
	}
	f.varIndex[name] = len(f.vars)
	f.vars = append(f.vars, &fact{name: name, line: line})
}

func (f *facts) recordParam(name string, line int) {
	if i, seen := f.paramIndex[name]; seen {
		f.params[i].line = line
		return
	}
	f.paramIndex[name] = len(f.params)
	f.params = append(f.params, &fact{name: name, line: line})
}

func (f *facts) recordMutableDefault(line int) {
	if f.mutableSeen[line] {
		return
	}
	f.mutableSeen[line] = true
	f.mutableLines = append(f.mutableLines, line)
}

// collect walks the module gathering identifier facts.  When strict is set
// only assignments inside function bodies are recorded; otherwise every
// simple-name assignment in the module counts.
func collect(mod *pyast.Module, strict bool) *facts {
	f := newFacts()
	pyast.Walk(mod.Body, func(s pyast.Stmt, enclosing *pyast.FuncDef) {
		switch s := s.(type) {
		case *pyast.Assign:
			if strict && enclosing == nil {
				return
			}
			for _, target := range s.Targets {
				f.recordVar(target.ID, target.Source.Line)
			}
		case *pyast.FuncDef:
			// Parameter facts attach to the def line even when the
			// parameter list spans multiple lines.
			for _, param := range s.Params {
				f.recordParam(param.Name, s.Source.Line)
				if param.Default != nil && !param.Default.Literal {
					f.recordMutableDefault(s.Source.Line)
				}
			}
		}
	})
	return f
}

// factDiagnostics converts collected facts to diagnostics: variable names
// first, then parameter names, then mutable defaults, each group in
// first-occurrence order.  The caller's stable line sort interleaves them
// with the line rules.
func factDiagnostics(mod *pyast.Module, filename string, strict bool) []Diagnostic {
	f := collect(mod, strict)
	var diags []Diagnostic
	for _, v := range f.vars {
		if isSnakeCase(v.name) {
			continue
		}
		diags = append(diags, Diagnostic{
			File:    filename,
			Line:    v.line,
			Code:    CodeVariableName,
			Message: "Variable '" + v.name + "' in function should be snake_case",
		})
	}
	for _, p := range f.params {
		if isSnakeCase(p.name) {
			continue
		}
		diags = append(diags, Diagnostic{
			File:    filename,
			Line:    p.line,
			Code:    CodeArgumentName,
			Message: "Argument name '" + p.name + "' should be snake_case",
		})
	}
	for _, line := range f.mutableLines {
		diags = append(diags, Diagnostic{
			File:    filename,
			Line:    line,
			Code:    CodeMutableDefault,
			Message: "Default argument value is mutable",
		})
	}
	return diags
}
