package usecases

import (
	"context"

	"realestate-server/cms"
	"realestate-server/entities"
	"realestate-server/logger"

	"github.com/sirupsen/logrus"
)

const (
	GallerySourceCMS    = "cms"
	GallerySourceStored = "stored"
)

// GalleryProvider fetches editorial images for a CMS collection entry.
type GalleryProvider interface {
	Gallery(ctx context.Context, collection, slug string) ([]cms.Image, error)
}

type PropertyPage struct {
	Property      *entities.Property
	Gallery       []cms.Image
	GallerySource string
}

type ProjectPage struct {
	Project       *entities.Project
	Gallery       []cms.Image
	GallerySource string
}

type PageUseCase struct {
	Properties *PropertyUseCase
	Projects   *ProjectUseCase
	Galleries  GalleryProvider
}

func NewPageUseCase(properties *PropertyUseCase, projects *ProjectUseCase, galleries GalleryProvider) *PageUseCase {
	return &PageUseCase{
		Properties: properties,
		Projects:   projects,
		Galleries:  galleries,
	}
}

// PropertyPage loads a published property. The CMS gallery wins when it
// has images; otherwise the stored cover and gallery media are used.
func (uc *PageUseCase) PropertyPage(ctx context.Context, slug string) (*PropertyPage, error) {
	property, err := uc.Properties.GetPublishedProperty(slug)
	if err != nil {
		return nil, err
	}

	page := &PropertyPage{Property: property, GallerySource: GallerySourceCMS}
	page.Gallery = uc.gallery(ctx, "properties", slug)
	if len(page.Gallery) == 0 {
		page.Gallery = storedGallery(property)
		page.GallerySource = GallerySourceStored
	}
	return page, nil
}

// ProjectPage loads a project with its published properties. When the CMS
// has nothing, each property's cover stands in.
func (uc *PageUseCase) ProjectPage(ctx context.Context, slug string) (*ProjectPage, error) {
	project, err := uc.Projects.GetProjectBySlug(slug)
	if err != nil {
		return nil, err
	}

	page := &ProjectPage{Project: project, GallerySource: GallerySourceCMS}
	page.Gallery = uc.gallery(ctx, "projects", slug)
	if len(page.Gallery) == 0 {
		page.GallerySource = GallerySourceStored
		page.Gallery = []cms.Image{}
		for i := range project.Properties {
			if cover := project.Properties[i].CoverURL(); cover != "" {
				page.Gallery = append(page.Gallery, cms.Image{URL: cover, Alt: project.Properties[i].Title})
			}
		}
	}
	return page, nil
}

// gallery never fails the page; CMS errors are logged and treated as empty.
func (uc *PageUseCase) gallery(ctx context.Context, collection, slug string) []cms.Image {
	if uc.Galleries == nil {
		return nil
	}
	images, err := uc.Galleries.Gallery(ctx, collection, slug)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"collection": collection,
			"slug":       slug,
			"error":      err,
		}).Warn("cms gallery unavailable, using stored media")
		return nil
	}
	return images
}

func storedGallery(property *entities.Property) []cms.Image {
	images := []cms.Image{}
	for _, m := range property.Media {
		if m.Category == entities.MediaCover || m.Category == entities.MediaGallery {
			images = append(images, cms.Image{URL: m.URL, Alt: property.Title})
		}
	}
	return images
}
