package catalog

// emptySchema is the schema for tools that take no arguments.
func emptySchema() InputSchema {
	return InputSchema{Type: "object", Properties: map[string]Property{}}
}

func schema(props map[string]Property, required ...string) InputSchema {
	return InputSchema{Type: "object", Properties: props, Required: required}
}

// defaultTools declares every tool the bridge exposes. The order groups
// tools by resource; List preserves it.
func defaultTools() []Tool {
	return []Tool{
		// Auth
		{
			Name:        "login",
			Description: "Login with email and password (interactive clients only)",
			InputSchema: schema(map[string]Property{
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string"},
			}, "email", "password"),
		},
		{
			Name:        "logout",
			Description: "Logout and clear the saved session",
			InputSchema: emptySchema(),
		},
		{
			Name:        "whoami",
			Description: "Show current user info",
			InputSchema: emptySchema(),
		},

		// Contacts
		{
			Name:         "contacts_list",
			Description:  "List all contacts",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/contacts",
		},
		{
			Name:        "contacts_create",
			Description: "Create new contact. Only firstName is required, all other fields are optional.",
			InputSchema: schema(map[string]Property{
				"firstName": {Type: "string", Description: "First name"},
				"lastName":  {Type: "string", Description: "Last name"},
				"email":     {Type: "string", Description: "Email address"},
				"phone":     {Type: "string", Description: "Phone number"},
				"company":   {Type: "string", Description: "Company name"},
				"jobTitle":  {Type: "string", Description: "Job title"},
				"notes":     {Type: "string", Description: "Additional notes"},
			}, "firstName"),
			Method:       "POST",
			PathTemplate: "/contacts",
		},
		{
			Name:        "contacts_get",
			Description: "Get contact by ID",
			InputSchema: schema(map[string]Property{
				"contactId": {Type: "string"},
			}, "contactId"),
			Method:       "GET",
			PathTemplate: "/contacts/{contactId}",
		},
		{
			Name:        "contacts_update",
			Description: "Update contact",
			InputSchema: schema(map[string]Property{
				"contactId": {Type: "string"},
				"firstName": {Type: "string"},
				"lastName":  {Type: "string"},
				"email":     {Type: "string"},
				"phone":     {Type: "string"},
			}, "contactId"),
			Method:       "PATCH",
			PathTemplate: "/contacts/{contactId}",
		},
		{
			Name:        "contacts_delete",
			Description: "Delete contact (ADMIN or MANAGER)",
			InputSchema: schema(map[string]Property{
				"contactId": {Type: "string"},
			}, "contactId"),
			Method:       "DELETE",
			PathTemplate: "/contacts/{contactId}",
		},
		{
			Name:        "contacts_search",
			Description: "Search contacts by query",
			InputSchema: schema(map[string]Property{
				"query": {Type: "string"},
			}, "query"),
			Method:       "GET",
			PathTemplate: "/contacts/search?q={query}",
		},

		// Deals
		{
			Name:         "deals_list",
			Description:  "List all deals",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/deals",
		},
		{
			Name:        "deals_create",
			Description: "Create new deal. Requires pipelineId and stageId - use pipelines_list and stages_list first to get valid IDs.",
			InputSchema: schema(map[string]Property{
				"title":       {Type: "string", Description: "Deal title"},
				"contactId":   {Type: "string", Description: "Associated contact ID"},
				"pipelineId":  {Type: "string", Description: "Pipeline ID (use pipelines_list)"},
				"stageId":     {Type: "string", Description: "Initial stage ID (use stages_list)"},
				"value":       {Type: "number", Description: "Deal value in dollars"},
				"probability": {Type: "number", Description: "Win probability (0-100)"},
				"notes":       {Type: "string", Description: "Additional notes"},
			}, "title", "contactId", "pipelineId", "stageId"),
			Method:       "POST",
			PathTemplate: "/deals",
		},
		{
			Name:        "deals_get",
			Description: "Get deal by ID",
			InputSchema: schema(map[string]Property{
				"dealId": {Type: "string"},
			}, "dealId"),
			Method:       "GET",
			PathTemplate: "/deals/{dealId}",
		},
		{
			Name:        "deals_update",
			Description: "Update deal",
			InputSchema: schema(map[string]Property{
				"dealId": {Type: "string"},
				"title":  {Type: "string"},
				"value":  {Type: "number"},
			}, "dealId"),
			Method:       "PATCH",
			PathTemplate: "/deals/{dealId}",
		},
		{
			Name:        "deals_delete",
			Description: "Delete deal (ADMIN or MANAGER)",
			InputSchema: schema(map[string]Property{
				"dealId": {Type: "string"},
			}, "dealId"),
			Method:       "DELETE",
			PathTemplate: "/deals/{dealId}",
		},
		{
			Name:        "deals_move",
			Description: "Move deal to different stage",
			InputSchema: schema(map[string]Property{
				"dealId":  {Type: "string"},
				"stageId": {Type: "string"},
			}, "dealId", "stageId"),
			Method:       "PATCH",
			PathTemplate: "/deals/{dealId}/move",
		},

		// Leads
		{
			Name:         "leads_list",
			Description:  "List leads",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/leads",
		},
		{
			Name:        "leads_create",
			Description: "Create new lead. Requires contactId, title, and source. Get contactId from contacts_list or contacts_search first.",
			InputSchema: schema(map[string]Property{
				"contactId": {Type: "string", Description: "Contact to associate with this lead"},
				"title":     {Type: "string", Description: "Lead title (2-200 chars)"},
				"source":    {Type: "string", Description: "Lead source, e.g. 'Cold Call', 'Website', 'Referral'"},
				"value":     {Type: "number", Description: "Estimated deal value in dollars"},
				"notes":     {Type: "string", Description: "Additional notes"},
			}, "contactId", "title", "source"),
			Method:       "POST",
			PathTemplate: "/leads",
		},
		{
			Name:        "leads_update",
			Description: "Update lead details like status, source, or value.",
			InputSchema: schema(map[string]Property{
				"leadId":    {Type: "string", Description: "Lead ID to update"},
				"title":     {Type: "string"},
				"contactId": {Type: "string"},
				"status":    {Type: "string", Enum: []string{"NEW", "CONTACTED", "QUALIFIED", "UNQUALIFIED", "CONVERTED"}},
				"source":    {Type: "string"},
				"value":     {Type: "number"},
				"notes":     {Type: "string"},
			}, "leadId"),
			Method:       "PATCH",
			PathTemplate: "/leads/{leadId}",
		},
		{
			Name:        "leads_convert",
			Description: "Convert lead to deal. The deal inherits title and value from the lead. Requires pipelineId and stageId.",
			InputSchema: schema(map[string]Property{
				"leadId":            {Type: "string", Description: "Lead ID to convert"},
				"pipelineId":        {Type: "string", Description: "Pipeline ID (use pipelines_list)"},
				"stageId":           {Type: "string", Description: "Initial stage ID (use stages_list)"},
				"probability":       {Type: "number", Description: "Win probability (0-100)"},
				"expectedCloseDate": {Type: "string", Description: "Expected close date (ISO format)"},
			}, "leadId", "pipelineId", "stageId"),
			Method:       "POST",
			PathTemplate: "/leads/{leadId}/convert",
		},
		{
			Name:        "leads_delete",
			Description: "Delete lead (ADMIN or MANAGER)",
			InputSchema: schema(map[string]Property{
				"leadId": {Type: "string"},
			}, "leadId"),
			Method:       "DELETE",
			PathTemplate: "/leads/{leadId}",
		},

		// Tickets
		{
			Name:         "tickets_list",
			Description:  "List tickets",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/tickets",
		},
		{
			Name:        "tickets_create",
			Description: "Create ticket. Requires title, priority, source, and contactId.",
			InputSchema: schema(map[string]Property{
				"title":          {Type: "string", Description: "Ticket title (min 5 characters)"},
				"priority":       {Type: "string", Enum: []string{"LOW", "MEDIUM", "HIGH", "URGENT"}},
				"source":         {Type: "string", Enum: []string{"EMAIL", "PHONE", "CHAT", "PORTAL", "WEB_FORM", "SOCIAL_MEDIA", "OTHER"}},
				"contactId":      {Type: "string", Description: "Associated contact ID"},
				"description":    {Type: "string", Description: "Ticket description"},
				"dealId":         {Type: "string", Description: "Associated deal ID"},
				"assignedUserId": {Type: "string", Description: "User ID to assign to"},
			}, "title", "priority", "source", "contactId"),
			Method:       "POST",
			PathTemplate: "/tickets",
		},
		{
			Name:        "tickets_get",
			Description: "Get ticket by ID",
			InputSchema: schema(map[string]Property{
				"ticketId": {Type: "string"},
			}, "ticketId"),
			Method:       "GET",
			PathTemplate: "/tickets/{ticketId}",
		},
		{
			Name:        "tickets_update",
			Description: "Update ticket",
			InputSchema: schema(map[string]Property{
				"ticketId": {Type: "string"},
				"status":   {Type: "string"},
			}, "ticketId"),
			Method:       "PATCH",
			PathTemplate: "/tickets/{ticketId}",
		},
		{
			Name:        "tickets_delete",
			Description: "Delete ticket (ADMIN or MANAGER)",
			InputSchema: schema(map[string]Property{
				"ticketId": {Type: "string"},
			}, "ticketId"),
			Method:       "DELETE",
			PathTemplate: "/tickets/{ticketId}",
		},
		{
			Name:        "tickets_comment",
			Description: "Add comment to ticket",
			InputSchema: schema(map[string]Property{
				"ticketId": {Type: "string"},
				"comment":  {Type: "string"},
			}, "ticketId", "comment"),
			Method:       "POST",
			PathTemplate: "/tickets/{ticketId}/comments",
		},
		{
			Name:        "tickets_assign",
			Description: "Assign ticket to user",
			InputSchema: schema(map[string]Property{
				"ticketId": {Type: "string"},
				"userId":   {Type: "string"},
			}, "ticketId", "userId"),
			Method:       "PATCH",
			PathTemplate: "/tickets/{ticketId}/assign",
		},

		// Analytics
		{
			Name:         "analytics_dashboard",
			Description:  "Get analytics dashboard data",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/analytics/dashboard",
		},
		{
			Name:         "analytics_revenue",
			Description:  "Get revenue forecast analytics",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/analytics/revenue",
		},

		// Users
		{
			Name:         "users_list",
			Description:  "List all workspace users (ADMIN or MANAGER)",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/users",
		},
		{
			Name:        "users_get",
			Description: "Get user by ID (ADMIN or MANAGER)",
			InputSchema: schema(map[string]Property{
				"userId": {Type: "string"},
			}, "userId"),
			Method:       "GET",
			PathTemplate: "/users/{userId}",
		},
		{
			Name:        "users_invite",
			Description: "Invite new user to workspace (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"email": {Type: "string", Format: "email"},
				"role":  {Type: "string", Enum: []string{"ADMIN", "MANAGER", "MEMBER"}},
			}, "email", "role"),
			Method:       "POST",
			PathTemplate: "/users/invite",
		},
		{
			Name:        "users_update_role",
			Description: "Update user role (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"userId": {Type: "string"},
				"role":   {Type: "string", Enum: []string{"ADMIN", "MANAGER", "MEMBER"}},
			}, "userId", "role"),
			Method:       "PATCH",
			PathTemplate: "/users/{userId}/role",
		},
		{
			Name:        "users_deactivate",
			Description: "Deactivate user (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"userId": {Type: "string"},
			}, "userId"),
			Method:       "DELETE",
			PathTemplate: "/users/{userId}",
		},

		// Pipelines
		{
			Name:         "pipelines_list",
			Description:  "List all pipelines",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/pipelines",
		},
		{
			Name:        "pipelines_create",
			Description: "Create pipeline (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"name":        {Type: "string"},
				"description": {Type: "string"},
			}, "name"),
			Method:       "POST",
			PathTemplate: "/pipelines",
		},
		{
			Name:        "pipelines_update",
			Description: "Update pipeline (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"pipelineId":  {Type: "string"},
				"name":        {Type: "string"},
				"description": {Type: "string"},
			}, "pipelineId"),
			Method:       "PATCH",
			PathTemplate: "/pipelines/{pipelineId}",
		},
		{
			Name:        "pipelines_delete",
			Description: "Delete pipeline (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"pipelineId": {Type: "string"},
			}, "pipelineId"),
			Method:       "DELETE",
			PathTemplate: "/pipelines/{pipelineId}",
		},

		// Stages
		{
			Name:        "stages_list",
			Description: "List stages in pipeline",
			InputSchema: schema(map[string]Property{
				"pipelineId": {Type: "string"},
			}, "pipelineId"),
			Method: "GET",
			// pipelineId travels as a query parameter, not a path segment.
			PathTemplate: "/stages",
		},
		{
			Name:        "stages_create",
			Description: "Create stage in pipeline (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"pipelineId": {Type: "string"},
				"name":       {Type: "string"},
				"order":      {Type: "number"},
			}, "pipelineId", "name"),
			Method:       "POST",
			PathTemplate: "/stages",
		},
		{
			Name:        "stages_update",
			Description: "Update stage (ADMIN only)",
			InputSchema: schema(map[string]Property{
				"stageId": {Type: "string"},
				"name":    {Type: "string"},
				"order":   {Type: "number"},
			}, "stageId"),
			Method:       "PATCH",
			PathTemplate: "/stages/{stageId}",
		},

		// Customer portal
		{
			Name:         "portal_customers_list",
			Description:  "List portal customers",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/portal/customers",
		},
		{
			Name:         "portal_tickets_list",
			Description:  "List customer portal tickets",
			InputSchema:  emptySchema(),
			Method:       "GET",
			PathTemplate: "/portal/tickets",
		},
		{
			Name:        "portal_tickets_create",
			Description: "Create ticket from portal",
			InputSchema: schema(map[string]Property{
				"title":       {Type: "string"},
				"description": {Type: "string"},
			}, "title"),
			Method:       "POST",
			PathTemplate: "/portal/tickets",
		},
	}
}
