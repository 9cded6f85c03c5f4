package bot

import "github.com/techfacts/factbot/internal/facts"

const (
	welcomeTitle = "What would you like to know about Microsoft Azure?"
	welcomeText  = "You can say things like:  \n" +
		"_'Tell me about Azure certifications.'_  \n" +
		"_'When was Azure released?'_  \n" +
		"_'Give me a random fact.'_"
	welcomeImage = "image-16.png"

	helpTitle = "Need a little help?"
	helpText  = "Current facts include: " + facts.TopicList + "."
	helpImage = "image-15.png"

	cancelText = "Goodbye."

	defaultTextFormat = "Sorry, I didn't understand: '%s'."

	storeUnavailableText = "Sorry, I can't look up facts right now. Please try again later."
)

// Flow names, used as the intent label on metrics.
const (
	flowGreeting   = "Greeting"
	flowHelp       = "Help"
	flowCancel     = "Cancel"
	flowAzureFacts = "AzureFacts"
	flowDefault    = "Default"
)
