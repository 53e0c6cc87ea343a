package notify

import "html/template"

const timeLayout = "Monday 2 January 2006, 15:04"

var bookingStatusTmpl = template.Must(template.New("bookingStatus").Parse(`
<h2>Booking {{.StatusLabel}}</h2>
<p>Hi {{.RecipientName}},</p>
<p>Your booking with {{.CounterpartyName}} on <strong>{{.Start}}</strong> (until {{.End}})
is now <strong>{{.StatusLabel}}</strong>.</p>
{{if .Note}}<p>Note: {{.Note}}</p>{{end}}
<p>— The minderbook team</p>
`))

var welcomeParentTmpl = template.Must(template.New("welcomeParent").Parse(`
<h2>Welcome to minderbook!</h2>
<p>Hi {{.Name}},</p>
<p>Your parent account is ready. Search trusted, vetted childminders near you
and book your first session today.</p>
<p>— The minderbook team</p>
`))

var welcomeChildminderTmpl = template.Must(template.New("welcomeChildminder").Parse(`
<h2>Welcome to minderbook!</h2>
<p>Hi {{.Name}},</p>
<p>Your childminder account is ready. Upload your Garda vetting and Tusla
registration documents to start receiving booking requests.</p>
<p>— The minderbook team</p>
`))

var newMessageTmpl = template.Must(template.New("newMessage").Parse(`
<h2>New message</h2>
<p>Hi {{.RecipientName}},</p>
<p>{{.SenderName}} sent you a new message on minderbook. Sign in to read and reply.</p>
<p>— The minderbook team</p>
`))

var profileUpdatedTmpl = template.Must(template.New("profileUpdated").Parse(`
<h2>Profile updated</h2>
<p>Hi {{.Name}},</p>
<p>Your minderbook profile was just updated. If this wasn't you, please contact support.</p>
<p>— The minderbook team</p>
`))

var ticketCreatedTmpl = template.Must(template.New("ticketCreated").Parse(`
<h2>Support ticket received</h2>
<p>Hi {{.RecipientName}},</p>
<p>Ticket <strong>{{.Subject}}</strong> ({{.Category}}, priority {{.Priority}}) has been opened
{{if .ForAdmin}}by {{.SubmitterName}} and is waiting for a response{{else}}and our team will get back to you shortly{{end}}.</p>
<p>— The minderbook team</p>
`))

var ticketReplyTmpl = template.Must(template.New("ticketReply").Parse(`
<h2>New reply on your support ticket</h2>
<p>Hi {{.RecipientName}},</p>
<p>{{.AuthorName}} replied on ticket <strong>{{.Subject}}</strong>. Sign in to view the conversation.</p>
<p>— The minderbook team</p>
`))

var documentReviewedTmpl = template.Must(template.New("documentReviewed").Parse(`
<h2>Document {{.StatusLabel}}</h2>
<p>Hi {{.Name}},</p>
<p>Your document <strong>{{.DocumentName}}</strong> has been {{.StatusLabel}}.</p>
{{if .Note}}<p>Reviewer note: {{.Note}}</p>{{end}}
<p>— The minderbook team</p>
`))
