// Package schema describes and checks the positional arguments of node
// types.
//
// Each registered node type declares a Params list. The builder checks the
// arguments of every Add call against it before the factory runs, so a bad
// descriptor fails at the call that introduced it:
//
//	params := schema.Params{
//	    {Name: "property", Type: schema.Property()},
//	    {Name: "min", Type: schema.Float()},
//	    {Name: "max", Type: schema.Float(), Optional: true},
//	}
//	err := schema.Validate(params, []any{"health", "0.5"})
//
// Types accept what registry.Args can decode: numeric strings pass as
// numbers, since descriptor files are loosely typed. A nil argument counts
// as absent.
package schema
