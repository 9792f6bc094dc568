// Package tools defines the Tool interfaces exposed to agents, including
// parameter schema, lifecycle callbacks and MCP registration.
package tools
