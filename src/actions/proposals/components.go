package proposals

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Custom ids carried by wizard components. Select menus embed the pending id after
// a "|" separator so each step finds its own wizard state.
const (
	SubmitButtonID          = "proposals_submit"
	DetailsModalID          = "proposals_details"
	FormatSelectPrefix      = "proposals_format"
	ContributorSelectPrefix = "proposals_contributor"

	SubjectInputID     = "subject"
	DescriptionInputID = "description"

	ContributorYes = "yes"
	ContributorNo  = "no"

	customIDSeparator = "|"
)

// FormatSelectID returns the custom id of the format menu for a pending proposal.
func FormatSelectID(pendingID string) string {
	return FormatSelectPrefix + customIDSeparator + pendingID
}

// ContributorSelectID returns the custom id of the contributor menu.
func ContributorSelectID(pendingID string) string {
	return ContributorSelectPrefix + customIDSeparator + pendingID
}

func splitCustomID(customID string) (prefix, pendingID string) {
	prefix, pendingID, _ = strings.Cut(customID, customIDSeparator)
	return prefix, pendingID
}

func submitButton() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "📝 Submit an idea",
				Style:    discordgo.PrimaryButton,
				CustomID: SubmitButtonID,
			},
		},
	}
}

func detailsModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: DetailsModalID,
		Title:    "Propose an idea",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  SubjectInputID,
					Label:     "What is the subject?",
					Style:     discordgo.TextInputParagraph,
					Required:  true,
					MaxLength: 200,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  DescriptionInputID,
					Label:     "Describe your idea",
					Style:     discordgo.TextInputParagraph,
					Required:  true,
					MaxLength: 1500,
				},
			}},
		},
	}
}

func formatSelect(pendingID string, formats []string) discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(formats))
	for _, f := range formats {
		options = append(options, discordgo.SelectMenuOption{Label: f, Value: f})
	}
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    FormatSelectID(pendingID),
				Placeholder: "Choose the format",
				Options:     options,
			},
		},
	}
}

func contributorSelect(pendingID string) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    ContributorSelectID(pendingID),
				Placeholder: "Do you want to be a contributor?",
				Options: []discordgo.SelectMenuOption{
					{Label: "Yes", Value: ContributorYes},
					{Label: "No", Value: ContributorNo},
				},
			},
		},
	}
}

// modalValues flattens the text inputs of a submitted modal into a map keyed by
// custom id.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
