// Command onreadygen generates static ready member tables from source annotations.
//
// Instead of scanning types at runtime, mark members in source and let the
// generator emit a ready.Table plus an InitializeOnReady method per type.
//
// Marking members
//
// Fields carry a struct tag with the node path:
//
//	type Hud struct {
//		scene.Base
//		scoreLabel *scene.Label `onready:"ScoreLabel"`
//	}
//
// Properties are getter methods preceded by a directive. A matching Set<Name>
// method with one parameter makes the property writable; without it the
// property is read-only and ready reports it at runtime:
//
//	//onready:path TitleNode
//	func (h *Hud) Title() scene.Node { return h.title }
//
// What onreadygen emits
//
// For each marked type T:
//
//   - var tMembers = ready.Declare[T, Node]().Field(...).Property(...)
//   - func (x *T) InitializeOnReady(reg *ready.Registry) (*ready.Result, error)
//
// Members whose type equals the node type use ready.Assign; other member types
// use ready.Convert, which checks the node's dynamic type at assignment.
//
// Flags
//
//	--dir             package directory to scan (default ".")
//	--out             output file (default <dir>/onready.gen.go)
//	--type            restrict to these types (repeatable)
//	--node-type       node type expression, e.g. scene.Node (required)
//	--node-import     import path for the node type's package
//	--runtime-import  import path of the ready package
//	--config          YAML file with the same keys; flags win over the file
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/onreadygen --dir . --type Hud --node-type scene.Node --out hud_onready.gen.go
//
// Then:
//
//	go generate ./...
package main
