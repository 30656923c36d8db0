// Package graphql defines the read-only query schema used by the mobile
// app to fetch menu, announcements and opening hours in one round trip.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/repositories"
	"github.com/tyabelawras/api/pkg/orm"
	gql "github.com/tyabelawras/api/pkg/graphql"
)

var menuItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.Int, Resolve: resolveID},
		"name":  &graphql.Field{Type: graphql.String},
		"price": &graphql.Field{Type: graphql.Float},
		"image": &graphql.Field{Type: graphql.String},
		"type":  &graphql.Field{Type: graphql.String},
		"kind":  &graphql.Field{Type: graphql.String},
	},
})

var announcementType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Announcement",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int, Resolve: resolveID},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
	},
})

var workingTimeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "WorkingTime",
	Fields: graphql.Fields{
		"day":      &graphql.Field{Type: graphql.String},
		"open":     &graphql.Field{Type: graphql.String},
		"close":    &graphql.Field{Type: graphql.String},
		"isClosed": &graphql.Field{Type: graphql.Boolean},
	},
})

// NewSchema builds the query-only schema. Mutations stay on REST.
func NewSchema() (graphql.Schema, error) {
	catalog := repositories.NewCatalogRepository()

	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menuItems": &graphql.Field{
				Type: graphql.NewList(menuItemType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.AllMenuItems()
				},
			},
			"announcements": &graphql.Field{
				Type: graphql.NewList(announcementType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var items []models.Announcement
					err := orm.DB().Model(&models.Announcement{}).Order("created_at desc").Get(&items)
					return items, err
				},
			},
			"workingTimes": &graphql.Field{
				Type: graphql.NewList(workingTimeType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var times []models.WorkingTime
					err := orm.DB().Model(&models.WorkingTime{}).Get(&times)
					return times, err
				},
			},
		},
	})

	return gql.NewSchema(root)
}

// resolveID digs the gorm.Model ID out; graphql-go resolves struct fields
// by JSON tag and the embedded gorm.Model carries none.
func resolveID(p graphql.ResolveParams) (interface{}, error) {
	switch v := p.Source.(type) {
	case models.MenuItem:
		return int(v.ID), nil
	case models.Announcement:
		return int(v.ID), nil
	default:
		return nil, fmt.Errorf("graphql: unsupported source %T", p.Source)
	}
}
