package types

// Wire-level constants shared by the GraphQL and REST clients.
// Centralizing these prevents typos and makes refactoring safer.
const (
	// OrganizationHeader carries the organization every request is scoped
	// to.
	OrganizationHeader = "X-Organization-ID"

	// RequestIDHeader carries a fresh UUID per HTTP attempt, for
	// correlating client and server logs.
	RequestIDHeader = "X-Request-ID"

	// ViewsPath is the REST collection for product view templates.
	ViewsPath = "/api/v1/pim/views"

	// ViewsUpdatePath updates an existing view template.
	ViewsUpdatePath = ViewsPath + "/update"

	// ViewsDuplicatePath is followed by the escaped id of the template to
	// copy.
	ViewsDuplicatePath = ViewsPath + "/duplicate/"

	// WorkspaceNameCheckPath answers whether a workspace name is free.
	WorkspaceNameCheckPath = "/api/v1/workspaces/check-name"
)
