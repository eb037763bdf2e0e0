package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
)

const maxNewsletterChars = 6000

// NewsletterSource pulls the most recent issue of an email newsletter from
// an IMAP inbox. It matches by sender first, then falls back to a subject
// keyword. One issue becomes one item.
type NewsletterSource struct {
	id       string
	addr     string
	user     string
	password string
	sender   string
	subject  string
}

func NewNewsletterSource(id, addr, user, password, sender, subject string) *NewsletterSource {
	return &NewsletterSource{
		id:       id,
		addr:     addr,
		user:     user,
		password: password,
		sender:   sender,
		subject:  subject,
	}
}

func (s *NewsletterSource) ID() string {
	return s.id
}

func (s *NewsletterSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := imapclient.DialTLS(s.addr, nil)
	if err != nil {
		return nil, fmt.Errorf("imap dial %s: %w", s.addr, err)
	}
	defer c.Close()

	if err := c.Login(s.user, s.password).Wait(); err != nil {
		return nil, fmt.Errorf("imap login: %w", err)
	}
	defer c.Logout()

	if _, err := c.Select("INBOX", nil).Wait(); err != nil {
		return nil, fmt.Errorf("imap select: %w", err)
	}

	nums, err := s.searchLatest(c)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, nil
	}

	bodySection := &imap.FetchItemBodySection{}
	msgs, err := c.Fetch(imap.SeqSetNum(nums[len(nums)-1]), &imap.FetchOptions{
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}).Collect()
	if err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	raw := msgs[0].FindBodySection(bodySection)
	title := s.id
	if msgs[0].Envelope != nil && msgs[0].Envelope.Subject != "" {
		title = msgs[0].Envelope.Subject
	}

	body, err := extractTextBody(raw)
	if err != nil {
		return nil, fmt.Errorf("parse newsletter body: %w", err)
	}
	if body == "" {
		return nil, nil
	}
	if len(body) > maxNewsletterChars {
		body = body[:maxNewsletterChars]
	}

	return []Item{{Title: title, Body: body}}, nil
}

func (s *NewsletterSource) searchLatest(c *imapclient.Client) ([]uint32, error) {
	bySender := &imap.SearchCriteria{
		Header: []imap.SearchCriteriaHeaderField{{Key: "From", Value: s.sender}},
	}
	data, err := c.Search(bySender, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap search: %w", err)
	}
	if nums := data.AllSeqNums(); len(nums) > 0 {
		return nums, nil
	}

	bySubject := &imap.SearchCriteria{
		Header: []imap.SearchCriteriaHeaderField{{Key: "Subject", Value: s.subject}},
	}
	data, err = c.Search(bySubject, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap search: %w", err)
	}
	return data.AllSeqNums(), nil
}

// extractTextBody prefers the text/plain part and falls back to stripped
// text/html.
func extractTextBody(raw []byte) (string, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	var htmlBody string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		ct, _, err := h.ContentType()
		if err != nil {
			continue
		}

		payload, err := io.ReadAll(p.Body)
		if err != nil {
			return "", err
		}

		switch ct {
		case "text/plain":
			return strings.TrimSpace(string(payload)), nil
		case "text/html":
			if htmlBody == "" {
				htmlBody = stripHTML(string(payload))
			}
		}
	}

	return htmlBody, nil
}
