package models

import (
	"html/template"
)

// Content keys of the singleton site_content rows
const (
	ContentKeyAbout   = "about"
	ContentKeyContact = "contact"
)

// TrustedHTML is administrator-supplied markup emitted verbatim, never parsed or sanitised.
type TrustedHTML string

// HTML marks the markup safe for html/template
func (t TrustedHTML) HTML() template.HTML {
	return template.HTML(t)
}

// Address is a postal address
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// PhoneNumbers lists the public phone lines
type PhoneNumbers struct {
	Main    string `json:"main"`
	Support string `json:"support"`
}

// EmailAddresses lists the public mailboxes
type EmailAddresses struct {
	General string `json:"general"`
	Support string `json:"support"`
	Careers string `json:"careers"`
}

// SocialLink is one social profile
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactInfo is the singleton contact page record
type ContactInfo struct {
	Address     Address        `json:"address"`
	Phone       PhoneNumbers   `json:"phone"`
	Email       EmailAddresses `json:"email"`
	Hours       string         `json:"hours"`
	MapEmbed    TrustedHTML    `json:"mapEmbed"`
	SocialLinks []SocialLink   `json:"socialLinks"`
}

// Validate checks mailbox formats and social links
func (c *ContactInfo) Validate() error {
	var f fieldErrors
	f.email("email.general", c.Email.General)
	f.email("email.support", c.Email.Support)
	f.email("email.careers", c.Email.Careers)
	for i, l := range c.SocialLinks {
		if l.Platform == "" || l.URL == "" {
			f.add("socialLinks", "entry %d needs a platform and a url", i)
		}
	}
	if c.SocialLinks == nil {
		c.SocialLinks = []SocialLink{}
	}
	return f.result()
}

// Value is one company value card
type Value struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// TeamMember is one person on the about page
type TeamMember struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// AboutContent is the singleton about page record
type AboutContent struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Story    string       `json:"story"`
	Mission  string       `json:"mission"`
	Vision   string       `json:"vision"`
	Values   []Value      `json:"values"`
	Team     []TeamMember `json:"team"`
}

// Validate checks the heading and list entries
func (a *AboutContent) Validate() error {
	var f fieldErrors
	f.required("title", a.Title)
	for i, v := range a.Values {
		if v.Title == "" {
			f.add("values", "entry %d needs a title", i)
		}
	}
	for i, m := range a.Team {
		if m.Name == "" {
			f.add("team", "entry %d needs a name", i)
		}
	}
	if a.Values == nil {
		a.Values = []Value{}
	}
	if a.Team == nil {
		a.Team = []TeamMember{}
	}
	return f.result()
}
