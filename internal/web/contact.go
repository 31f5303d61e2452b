package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/ventures/internal/mail"
	"github.com/Zachkp/ventures/internal/store"
)

const (
	contactFailed  = "Sorry, there was an error sending your message. Please try again later."
	contactInvalid = "Please fill in your name, email and a message."
	contactThanks  = "Thank you for your message! I'll get back to you soon."
)

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Get in Touch",
	})
}

// contact stores the submission and then tries to mail it. The visitor
// sees success if either step worked, so a mail outage loses nothing.
func (s *Server) contact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || message == "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": contactInvalid})
		return
	}

	ctx := c.Request.Context()
	var (
		saved   store.Message
		stored  bool
		emailed bool
	)

	if s.store != nil {
		m, err := s.store.SaveMessage(ctx, store.Message{Name: name, Email: email, Body: message})
		if err != nil {
			s.logger.Error("saving contact message", zap.Error(err))
		} else {
			saved, stored = m, true
		}
	}

	if s.mailer != nil {
		err := s.mailer.Send(ctx, mail.Message{Name: name, Email: email, Body: message})
		if err != nil {
			s.logger.Warn("sending contact email", zap.Error(err))
		} else {
			emailed = true
			s.logger.Info("contact email sent", zap.String("from", hashIP(s.salt, email)))
		}
	}

	if stored && emailed {
		if err := s.store.MarkSent(ctx, saved.ID); err != nil {
			s.logger.Warn("marking message sent", zap.Int64("id", saved.ID), zap.Error(err))
		}
	}

	if !stored && !emailed {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": contactFailed})
		return
	}
	c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": contactThanks})
}
