// Package types holds the two message schemas the translator converts between,
// plus the options and error taxonomy shared by every provider package.
//
// The types are hand-modeled rather than taken from the provider SDKs:
//
//  1. INPUT/OUTPUT VALUES: A conversation held by a caller is plain data that gets
//     stored, logged and replayed. SDK param types are request builders with
//     param.Opt[T] wrappers and unions that only make sense right before a call.
//
//  2. CLOSED BLOCK SET: Schema B blocks are a sealed sum type (Text, ToolUse,
//     ToolResult). SDK unions carry a dozen variants the translator cannot map.
//
//  3. STANDARD JSON: Both schemas marshal to their provider wire format with
//     encoding/json. The SDK bridges in the provider packages convert at the edge.
package types
