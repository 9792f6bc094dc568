package yelp

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/yelpmcp/tools"
)

// Tool names
const (
	ToolChat            = "yelp_chat"
	ToolSearch          = "yelp_search"
	ToolPhoneSearch     = "yelp_phone_search"
	ToolBusinessMatch   = "yelp_business_match"
	ToolBusinessDetails = "yelp_business_details"
)

const (
	descChat = "Conversational AI for Yelp business queries. " +
		"Supports multi-turn conversations and location-aware responses."

	descSearch = "Search for businesses using Yelp Fusion API. Returns up to 50 businesses per request. " +
		"Requires either location or latitude/longitude pair."

	descPhoneSearch = "Search businesses by phone number. " +
		"Returns businesses matching the provided phone number."

	descBusinessMatch = "Match business data against Yelp listings using precise information."

	descBusinessDetails = "Get detailed information about a specific Yelp business. " +
		"Normally, the Business ID is taken from business search or phone search results. " +
		"Review excerpts are not included."
)

// NewChatTool returns the Yelp AI chat tool
func NewChatTool(client *Client, opts ...Option) (*Tool[ChatRequest], error) {
	return newTool(client, ToolChat, "Yelp AI Chat", descChat, (*ChatRequest).Request, opts...)
}

// NewSearchTool returns the business search tool
func NewSearchTool(client *Client, opts ...Option) (*Tool[SearchRequest], error) {
	return newTool(client, ToolSearch, "Yelp Business Search", descSearch, (*SearchRequest).Request, opts...)
}

// NewPhoneSearchTool returns the phone search tool
func NewPhoneSearchTool(client *Client, opts ...Option) (*Tool[PhoneSearchRequest], error) {
	return newTool(client, ToolPhoneSearch, "Yelp Phone Search", descPhoneSearch, (*PhoneSearchRequest).Request, opts...)
}

// NewBusinessMatchTool returns the business match tool
func NewBusinessMatchTool(client *Client, opts ...Option) (*Tool[BusinessMatchRequest], error) {
	return newTool(client, ToolBusinessMatch, "Yelp Business Match", descBusinessMatch, (*BusinessMatchRequest).Request, opts...)
}

// NewBusinessDetailsTool returns the business details tool
func NewBusinessDetailsTool(client *Client, opts ...Option) (*Tool[BusinessDetailsRequest], error) {
	return newTool(client, ToolBusinessDetails, "Yelp Business Details", descBusinessDetails, (*BusinessDetailsRequest).Request, opts...)
}

// NewTools returns all Yelp tools
func NewTools(client *Client, opts ...Option) ([]tools.IMCPTool, error) {
	var list []tools.IMCPTool

	chat, err := NewChatTool(client, opts...)
	if err != nil {
		return nil, err
	}
	list = append(list, chat)

	search, err := NewSearchTool(client, opts...)
	if err != nil {
		return nil, err
	}
	list = append(list, search)

	phone, err := NewPhoneSearchTool(client, opts...)
	if err != nil {
		return nil, err
	}
	list = append(list, phone)

	match, err := NewBusinessMatchTool(client, opts...)
	if err != nil {
		return nil, err
	}
	list = append(list, match)

	details, err := NewBusinessDetailsTool(client, opts...)
	if err != nil {
		return nil, err
	}
	list = append(list, details)

	return list, nil
}

// Find returns the tool by name
func Find(list []tools.IMCPTool, name string) (tools.IMCPTool, error) {
	for _, t := range list {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, errors.Errorf("tool not found: %s", name)
}
