package objc

import "strconv"

// Name is the emitted identity of a class or protocol.
type Name struct {
	// ObjCName is the name used in the header.
	ObjCName string

	// BinaryName is the runtime name, set only when it differs from ObjCName.
	BinaryName string

	// SwiftName is the name imported into Swift, set only when it differs
	// from ObjCName.
	SwiftName string
}

// Attributes returns the declaration attributes carrying the diverging names.
func (n Name) Attributes() []string {
	var attrs []string
	if n.BinaryName != "" && n.BinaryName != n.ObjCName {
		attrs = append(attrs, RuntimeNameAttribute(n.BinaryName))
	}
	if n.SwiftName != "" && n.SwiftName != n.ObjCName {
		attrs = append(attrs, SwiftNameAttribute(n.SwiftName))
	}
	return attrs
}

// SwiftNameAttribute returns a swift_name attribute.
func SwiftNameAttribute(name string) string {
	return "swift_name(" + strconv.Quote(name) + ")"
}

// RuntimeNameAttribute returns an objc_runtime_name attribute.
func RuntimeNameAttribute(name string) string {
	return "objc_runtime_name(" + strconv.Quote(name) + ")"
}

// DeprecatedAttribute returns a deprecated attribute with a message.
func DeprecatedAttribute(message string) string {
	return "deprecated(" + strconv.Quote(message) + ")"
}

// UnavailableAttribute returns an unavailable attribute with a message.
func UnavailableAttribute(message string) string {
	return "unavailable(" + strconv.Quote(message) + ")"
}

// SwiftUnavailableAttribute hides a declaration from Swift only.
func SwiftUnavailableAttribute(message string) string {
	return "availability(swift, unavailable, message=" + strconv.Quote(message) + ")"
}

// Fixed attributes.
const (
	DesignatedInitializerAttribute = "objc_designated_initializer"
	SubclassingRestrictedAttribute = "objc_subclassing_restricted"
)
