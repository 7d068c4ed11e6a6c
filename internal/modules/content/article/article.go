// Package article manages blog articles: listing, authoring, deletion and
// resetting the creation time. Every mutation asks the frontend to
// revalidate the home page, the article list and the article itself.
package article
