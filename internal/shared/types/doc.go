// Package types provides the schema-less value returned by the transport.
//
// A JSON response decodes into an Object, a map of Value. A Value is one of
// null, bool, number, string, array or object; numbers keep their decimal
// text so 64-bit ids and sizes survive without float rounding.
//
// Typed models are built by mapping over an Object:
//
//	obj, _ := types.ParseObject(body)
//	size := obj.Int("sizeOriginal")
//	perms := obj.Strings("$permissions")
//
// Missing keys read as the zero value; use Get to tell absent from empty.
package types
