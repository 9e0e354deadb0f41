package seed

import (
	"context"

	"github.com/gobuffalo/packr"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/store"
)

// Seed bootstraps an empty database with an admin author, a default alias,
// the built-in template and theme, and a main arc, so a fresh install can
// render its first page. Already-seeded databases are left alone.
func Seed(ctx context.Context, st store.Store) error {
	templates, err := st.ListLatestTemplates(ctx, "")
	if err != nil {
		return err
	}
	if len(templates) > 0 {
		logrus.Info("database already seeded, nothing to do")
		return nil
	}

	box := packr.NewBox("../../seeds")

	tplText, err := box.FindString("default_template.html")
	if err != nil {
		return err
	}
	headerText, err := box.FindString("theme_header.html")
	if err != nil {
		return err
	}
	footerText, err := box.FindString("theme_footer.html")
	if err != nil {
		return err
	}

	author := &model.Author{
		ID:   uuid.New().String(),
		Name: "admin",
	}
	if err := st.CreateAuthor(ctx, author); err != nil {
		return err
	}

	alias := &model.Alias{
		DisplayName: "Admin",
		AuthorID:    author.ID,
	}
	if err := st.SaveAlias(ctx, alias); err != nil {
		return err
	}

	tpl := &model.PageTemplate{
		Name:     "default",
		Template: tplText,
		OwnerHK:  alias.HK,
	}
	if err := st.SaveTemplate(ctx, tpl); err != nil {
		return err
	}

	theme := &model.PageTheme{
		Name:    "default",
		Meta:    "built-in theme",
		Header:  headerText,
		Footer:  footerText,
		OwnerHK: alias.HK,
	}
	if err := st.SaveTheme(ctx, theme); err != nil {
		return err
	}

	arc := &model.ComicArc{
		SlugName:    "main",
		DisplayName: "Main Story",
		OwnerHK:     alias.HK,
	}
	if err := st.SaveArc(ctx, arc); err != nil {
		return err
	}

	logrus.Infof("seeded author %s, alias %d, template %d, theme %d, arc %d",
		author.ID, alias.HK, tpl.HK, theme.HK, arc.HK)

	return nil
}
