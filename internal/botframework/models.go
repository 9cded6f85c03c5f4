package botframework

// --- Activity schema ---
// Reference: https://learn.microsoft.com/azure/bot-service/rest-api/bot-framework-rest-connector-api-reference#activity-object

const (
	ActivityTypeMessage = "message"

	TextFormatMarkdown = "markdown"

	ContentTypeThumbnailCard = "application/vnd.microsoft.card.thumbnail"
	ContentTypeHeroCard      = "application/vnd.microsoft.card.hero"

	ActionOpenURL = "openUrl"
)

type Activity struct {
	Type         string              `json:"type"`
	ID           string              `json:"id,omitempty"`
	Timestamp    string              `json:"timestamp,omitempty"`
	ServiceURL   string              `json:"serviceUrl,omitempty"`
	ChannelID    string              `json:"channelId,omitempty"`
	From         ChannelAccount      `json:"from"`
	Conversation ConversationAccount `json:"conversation"`
	Recipient    ChannelAccount      `json:"recipient"`
	ReplyToID    string              `json:"replyToId,omitempty"`
	Locale       string              `json:"locale,omitempty"`
	Text         string              `json:"text,omitempty"`
	TextFormat   string              `json:"textFormat,omitempty"`
	Attachments  []Attachment        `json:"attachments,omitempty"`
}

type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type ConversationAccount struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	IsGroup bool   `json:"isGroup,omitempty"`
}

type Attachment struct {
	ContentType string `json:"contentType"`
	Content     any    `json:"content"`
}

// Card is the content shared by thumbnail and hero cards.
// Reference: https://learn.microsoft.com/azure/bot-service/rest-api/bot-framework-rest-connector-api-reference#thumbnailcard-object
type Card struct {
	Title    string       `json:"title,omitempty"`
	Subtitle string       `json:"subtitle,omitempty"`
	Text     string       `json:"text,omitempty"`
	Images   []CardImage  `json:"images,omitempty"`
	Buttons  []CardAction `json:"buttons,omitempty"`
}

type CardImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type CardAction struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// NewReply addresses a message activity back to the sender of in.
func NewReply(in *Activity) *Activity {
	return &Activity{
		Type:         ActivityTypeMessage,
		ServiceURL:   in.ServiceURL,
		ChannelID:    in.ChannelID,
		From:         in.Recipient,
		Recipient:    in.From,
		Conversation: in.Conversation,
		ReplyToID:    in.ID,
		Locale:       in.Locale,
	}
}
