package core

import "strings"

// Role identifies a participant of the pipeline.
type Role string

// The closed set of pipeline participants.
const (
	RolePlanner     Role = "planner"
	RoleImplementer Role = "implementer"
	RoleTester      Role = "tester"
	RoleCoordinator Role = "coordinator"
)

// String returns the lower case role tag.
func (r Role) String() string { return string(r) }

// Label returns the upper case tag used as log prefix.
func (r Role) Label() string { return strings.ToUpper(string(r)) }
