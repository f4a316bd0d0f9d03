// Package responder produces scripted replies for the assistant
// widget. Matching is a case-insensitive substring scan over a fixed
// ordered table; the first matching keyword wins, ties resolved by
// table order, never by match length.
package responder

import "strings"

type entry struct {
	keyword string
	reply   string
}

// Greeting seeds every new conversation.
const Greeting = "Hello! I'm here to help you learn more about ChildHope and how you can make a difference in children's lives. How can I assist you today?"

var replies = []entry{
	{"hello", "Hello! Welcome to ChildHope. I'm here to help you learn about our mission to combat child labor and protect children's rights."},
	{"donate", "Thank you for your interest in donating! You can make a secure donation by clicking the 'Donate' button on our website. We accept one-time and recurring donations, and all contributions are tax-deductible."},
	{"volunteer", "We'd love to have you as a volunteer! You can apply through our Volunteer page. We have opportunities for fundraising, awareness campaigns, educational support, and direct child assistance programs."},
	{"mission", "Our mission is to eliminate child labor and provide education, healthcare, and hope to vulnerable children worldwide. We believe every child deserves a safe childhood and access to education."},
	{"contact", "You can reach us at info@childhope.org or call us at +1 (555) 123-4567. Our office is located at 123 Hope Street, Child Protection District."},
	{"help", "I can help you with information about donations, volunteering, our programs, contact details, and general questions about ChildHope. What would you like to know?"},
	{"programs", "We run several programs including Child Rescue Operations, Education Support, Healthcare Services, Family Rehabilitation, Awareness Campaigns, and Policy Advocacy."},
	{"impact", "We've rescued over 10,000 children from labor situations, provided education to 25,000+ children, and operate in 15+ countries. Check our Impact Dashboard for real-time statistics!"},
}

// Respond returns the scripted reply for input. Pure and total: every
// input, including the empty string, yields some reply.
func Respond(input string) string {
	lower := strings.ToLower(input)
	for _, e := range replies {
		if strings.Contains(lower, e.keyword) {
			return e.reply
		}
	}
	return "I understand you're asking about " + input + ". For specific information, please contact us at info@childhope.org or browse our website sections. I can help with questions about donations, volunteering, our programs, and contact information."
}
