// Package natalie implements a providers.Scraper for the Comic Natalie tag
// listing pages. It fetches one listing page and turns each news card into a
// news.Entry, skipping cards that lack a title, a link or a readable date.
package natalie
