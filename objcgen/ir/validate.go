package ir

// ValidationError represents a structural problem in the declaration graph.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the linked graph for structural issues.
// Returns all validation errors found (not just the first).
func (u *Universe) Validate() []error {
	errors := append([]*ValidationError(nil), u.problems...)

	for _, c := range u.order {
		if s := c.SuperClassDecl(); s != nil {
			if s.IsInterface() {
				errors = append(errors, &ValidationError{
					Code:    "superclass_is_interface",
					Message: "class " + c.FqName() + " extends interface " + s.FqName(),
				})
			}
			if c.IsInterface() {
				errors = append(errors, &ValidationError{
					Code:    "interface_has_superclass",
					Message: "interface " + c.FqName() + " declares superclass " + s.FqName(),
				})
			}
		}
		for _, s := range c.SuperInterfaceDecls() {
			if !s.IsInterface() {
				errors = append(errors, &ValidationError{
					Code:    "super_interface_is_class",
					Message: c.FqName() + " lists class " + s.FqName() + " as an interface",
				})
			}
		}
		for _, f := range c.Functions() {
			errors = append(errors, validateOverrides(f)...)
		}
	}

	if circularErrs := u.detectCircularInheritance(); len(circularErrs) > 0 {
		errors = append(errors, circularErrs...)
	}

	var result []error
	for _, e := range errors {
		result = append(result, e)
	}
	return result
}

func validateOverrides(f *Function) []*ValidationError {
	var errors []*ValidationError
	for _, o := range f.Overridden {
		if o == nil {
			errors = append(errors, &ValidationError{
				Code:    "missing_override_target",
				Message: f.QualifiedName() + " overrides an unresolved declaration",
			})
			continue
		}
		if o == f {
			errors = append(errors, &ValidationError{
				Code:    "self_override",
				Message: f.QualifiedName() + " overrides itself",
			})
		}
	}
	return errors
}

// detectCircularInheritance checks for cycles among supertypes.
func (u *Universe) detectCircularInheritance() []*ValidationError {
	var errors []*ValidationError

	visited := make(map[*ClassDecl]bool)
	inStack := make(map[*ClassDecl]bool)

	var detectCycle func(c *ClassDecl, path []string)
	detectCycle = func(c *ClassDecl, path []string) {
		if inStack[c] {
			errors = append(errors, &ValidationError{
				Code:    "circular_inheritance",
				Message: "circular inheritance detected: " + joinPath(append(path, c.FqName())),
			})
			return
		}
		if visited[c] {
			return
		}
		visited[c] = true
		inStack[c] = true

		supers := c.SuperInterfaceDecls()
		if s := c.SuperClassDecl(); s != nil {
			supers = append([]*ClassDecl{s}, supers...)
		}
		for _, s := range supers {
			detectCycle(s, append(path, c.FqName()))
		}

		inStack[c] = false
	}

	for _, c := range u.order {
		detectCycle(c, nil)
	}
	return errors
}

// joinPath joins path elements with " -> ".
func joinPath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	result := path[0]
	for i := 1; i < len(path); i++ {
		result += " -> " + path[i]
	}
	return result
}
