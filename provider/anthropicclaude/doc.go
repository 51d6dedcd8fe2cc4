// Package anthropicclaude translates between OpenAI chat-completions messages
// (Schema A) and Anthropic Messages content blocks (Schema B).
//
// The translator handles:
//
//   - System messages: Anthropic has no system role. System messages are dropped
//     from the output and the last one is reported through types.WithSystemPrompt.
//
//   - Tool results: OpenAI sends each result as a standalone "tool" message, Anthropic
//     attaches it as a tool_result block. FromOpenAI merges every tool message into the
//     preceding assistant output message; ToOpenAI splits every tool_result block back
//     out into its own message.
//
//   - Tool calls: Call IDs are preserved byte-for-byte. Missing IDs are replaced with
//     generated ones that are not expected to survive a second round trip. Arguments
//     travel as a JSON-encoded object string on the OpenAI side and as a parsed object
//     on the Anthropic side.
//
// Both directions are pure: no I/O, no shared state, and either the whole input
// converts or nothing is returned.
//
// # SDK bridges
//
// ToMessageParams, FromMessageParams, FromResponse, ToToolParams and FromToolParams
// convert Schema B values to and from anthropic-sdk-go request params and responses.
package anthropicclaude
