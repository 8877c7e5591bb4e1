package assistant

// ResponseKind tags the Response variant.
type ResponseKind string

const (
	KindText       ResponseKind = "text"
	KindNavigation ResponseKind = "navigation"
	KindResults    ResponseKind = "results"
)

// ItemType is the entity a ResultItem links to.
type ItemType string

const (
	ItemCandidate   ItemType = "candidate"
	ItemJob         ItemType = "job"
	ItemClient      ItemType = "client"
	ItemApplication ItemType = "application"
	ItemInterview   ItemType = "interview"
)

// ResultItem is one clickable search result shown in the chat.
type ResultItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Navigate    string   `json:"navigate"`
	DisplayText string   `json:"displayText"`
}

// Response is exactly one of: plain text, a navigation target, or a list of
// result items. Kind says which fields are meaningful.
type Response struct {
	Kind        ResponseKind `json:"kind"`
	Message     string       `json:"message"`
	Path        string       `json:"path,omitempty"`
	EntityLabel string       `json:"entityLabel,omitempty"`
	Items       []ResultItem `json:"items,omitempty"`
}

func Text(message string) Response {
	return Response{Kind: KindText, Message: message}
}

func Navigate(message, path, entityLabel string) Response {
	return Response{Kind: KindNavigation, Message: message, Path: path, EntityLabel: entityLabel}
}

func Results(message string, items []ResultItem) Response {
	return Response{Kind: KindResults, Message: message, Items: items}
}
