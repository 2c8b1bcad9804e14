package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
)

// getAllPrompts returns the list of prompt definitions (name, description, arguments).
func getAllPrompts() []Prompt {
	return []Prompt{
		{
			Name:        "draft_presentation",
			Description: "Author a slide deck in extended Markdown for a topic, then compile and store it.",
			Arguments: []PromptArgument{
				{Name: "topic", Description: "Subject of the presentation", Required: true, Type: "string"},
				{Name: "audience", Description: "Who the deck is for (optional)", Required: false, Type: "string"},
				{Name: "slide_count", Description: "Target number of slides (optional)", Required: false, Type: "number"},
			},
		},
		{
			Name:        "fix_presentation_errors",
			Description: "Validate Markdown slide source and patch it until it compiles cleanly.",
			Arguments: []PromptArgument{
				{Name: "markdown", Description: "Slide source that fails to compile", Required: true, Type: "string"},
			},
		},
		{
			Name:        "summarize_presentation",
			Description: "Summarize a stored presentation from its outline.",
			Arguments: []PromptArgument{
				{Name: "presentation_id", Description: "Id of the stored presentation", Required: true, Type: "string"},
			},
		},
	}
}

// getPromptByName returns the prompt messages for the given name with arguments substituted.
// If any required argument is missing, returns an error suitable for -32602 (Invalid params).
func getPromptByName(name string, arguments map[string]any) ([]PromptMessage, error) {
	prompts := getAllPrompts()
	var def *Prompt
	for i := range prompts {
		if prompts[i].Name == name {
			def = &prompts[i]
			break
		}
	}
	if def == nil {
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}

	var missing []string
	for _, arg := range def.Arguments {
		if !arg.Required {
			continue
		}
		v, ok := arguments[arg.Name]
		if !ok || v == nil {
			missing = append(missing, arg.Name)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, arg.Name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))
	}

	return buildPromptMessages(def, arguments)
}

func buildPromptMessages(def *Prompt, args map[string]any) ([]PromptMessage, error) {
	switch def.Name {
	case "draft_presentation":
		return buildDraftPresentationMessages(args), nil
	case "fix_presentation_errors":
		return buildFixErrorsMessages(args), nil
	case "summarize_presentation":
		return buildSummarizeMessages(args), nil
	default:
		return nil, fmt.Errorf("unknown prompt: %s", def.Name)
	}
}

func buildDraftPresentationMessages(args map[string]any) []PromptMessage {
	topic, _ := args["topic"].(string)
	text := fmt.Sprintf(
		"Write an extended-Markdown slide deck about %q. Read deckforge://docs/syntax for the dialect: "+
			"YAML frontmatter for title/author/theme, slides separated by --- lines, <!-- key: value --> "+
			"directives, and fenced chart/table/timeline/team blocks for data slides. ",
		topic,
	)
	if audience, _ := args["audience"].(string); audience != "" {
		text += fmt.Sprintf("Pitch the content at %s. ", audience)
	}
	if n, ok := args["slide_count"].(float64); ok && n > 0 {
		text += fmt.Sprintf("Aim for about %d slides. ", int(n))
	}
	text += "Then call create_presentation with the source and report the presentation id."
	return []PromptMessage{{
		Role:    "user",
		Content: []PromptContent{{Type: "text", Text: text}},
	}}
}

func buildFixErrorsMessages(args map[string]any) []PromptMessage {
	markdown, _ := args["markdown"].(string)
	text := "Call validate_markdown on the source below. If it reports an error, use the kind, slide, " +
		"line, and key fields to locate the problem, patch the source, and validate again until it is " +
		"clean. Read deckforge://docs/errors for what each error kind means.\n\n" + markdown
	return []PromptMessage{{
		Role:    "user",
		Content: []PromptContent{{Type: "text", Text: text}},
	}}
}

func buildSummarizeMessages(args map[string]any) []PromptMessage {
	presentationID, _ := args["presentation_id"].(string)
	text := fmt.Sprintf(
		"Call get_presentation_outline with presentation_id %q and summarize the deck: its narrative "+
			"arc, the data slides it leans on, and anything a reviewer should look at first.",
		presentationID,
	)
	return []PromptMessage{{
		Role:    "user",
		Content: []PromptContent{{Type: "text", Text: text}},
	}}
}

// promptsGetParams for prompts/get.
type promptsGetParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// parsePromptsGetParams parses params for prompts/get. Returns name, arguments, and error message if invalid.
func parsePromptsGetParams(params json.RawMessage) (name string, arguments map[string]any, errMsg string) {
	var p promptsGetParams
	if unmarshalErr := json.Unmarshal(params, &p); unmarshalErr != nil {
		return "", nil, "Invalid parameters: " + unmarshalErr.Error()
	}
	if p.Name == "" {
		return "", nil, "name is required"
	}
	if p.Arguments == nil {
		p.Arguments = map[string]any{}
	}
	return p.Name, p.Arguments, ""
}

// handlePromptsList returns the list of available prompts
func (s *Server) handlePromptsList(_ *Request, id any) *Response {
	return successResponse(id, map[string]any{
		"prompts": getAllPrompts(),
	})
}

// handlePromptsGet resolves one prompt with its arguments substituted
func (s *Server) handlePromptsGet(req *Request, id any) *Response {
	name, arguments, errMsg := parsePromptsGetParams(req.Params)
	if errMsg != "" {
		return errorResponse(id, InvalidParams, errMsg)
	}

	messages, err := getPromptByName(name, arguments)
	if err != nil {
		return errorResponse(id, InvalidParams, err.Error())
	}

	return successResponse(id, map[string]any{
		"messages": messages,
	})
}
