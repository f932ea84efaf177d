// Package generator drafts marketing scripts through an OpenRouter-style
// chat completion endpoint. The model responds with a JSON document that is
// parsed into a script.Script; timing refinement happens downstream.
package generator
