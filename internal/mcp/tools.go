package mcp

// getAllTools returns all available MCP tools.
func getAllTools() []Tool {
	tools := []Tool{}
	tools = append(tools, getCompileTools()...)
	tools = append(tools, getPresentationTools()...)
	return tools
}

func getCompileTools() []Tool {
	return []Tool{
		{
			Name:        "create_presentation",
			Description: "Compile extended-Markdown slide source into a presentation document and store it. Returns the presentation id, title, and slide count.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"markdown": map[string]any{
						"type":        "string",
						"description": "Extended-Markdown source: optional YAML frontmatter, slides separated by --- lines, directive comments, and fenced chart/table/timeline/team blocks",
					},
					"expand_includes": map[string]any{
						"type":        "boolean",
						"description": "Resolve <!-- include: path --> directives against the configured include root before compiling",
					},
				},
				"required": []string{"markdown"},
			},
		},
		{
			Name:        "create_presentation_from_file",
			Description: "Read a Markdown file from the configured include root, expand includes, compile it, and store the result.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "File path relative to the include root",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "validate_markdown",
			Description: "Compile extended-Markdown source without storing it. Returns ok, or the structured compile error (kind, slide, line, key, detail) so the source can be patched and retried.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"markdown": map[string]any{
						"type":        "string",
						"description": "Extended-Markdown source to validate",
					},
				},
				"required": []string{"markdown"},
			},
		},
		{
			Name:        "list_slide_types",
			Description: "List the supported slide types and how each one is inferred from content when no slide directive is present.",
			InputSchema: map[string]any{
				"type": "object",
			},
		},
	}
}

func getPresentationTools() []Tool {
	return []Tool{
		{
			Name:        "get_presentation",
			Description: "Return a stored presentation document as JSON: config plus every slide with its typed content elements.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"presentation_id": map[string]any{
						"type":        "string",
						"description": "Id returned by create_presentation",
					},
				},
				"required": []string{"presentation_id"},
			},
		},
		{
			Name:        "get_presentation_outline",
			Description: "Render a stored presentation as a plain-text outline, one entry per slide.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"presentation_id": map[string]any{
						"type":        "string",
						"description": "Id returned by create_presentation",
					},
				},
				"required": []string{"presentation_id"},
			},
		},
		{
			Name:        "get_slide",
			Description: "Return one slide of a stored presentation by its 1-based index.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"presentation_id": map[string]any{
						"type":        "string",
						"description": "Id returned by create_presentation",
					},
					"index": map[string]any{
						"type":        "integer",
						"description": "1-based slide index",
					},
				},
				"required": []string{"presentation_id", "index"},
			},
		},
		{
			Name:        "list_presentations",
			Description: "List stored presentations with id, title, and slide count, newest first.",
			InputSchema: map[string]any{
				"type": "object",
			},
		},
		{
			Name:        "delete_presentation",
			Description: "Remove a stored presentation.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"presentation_id": map[string]any{
						"type":        "string",
						"description": "Id of the presentation to remove",
					},
				},
				"required": []string{"presentation_id"},
			},
		},
	}
}
