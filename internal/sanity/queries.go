package sanity

// GROQ query catalog. Projections list every field the models decode.
const (
	menuItemFields = `_id, name, slug, description, price, image, available, featured, order, allergens,
  category->{_id, title, slug}`

	menuCategoriesQuery = `*[_type == "menuCategory"] | order(order asc) {
  _id, title, slug, description, order, image
}`

	menuItemsQuery = `*[_type == "menuItem" && available == true] | order(order asc) {
  ` + menuItemFields + `
}`

	menuItemsByCategoryQuery = `*[_type == "menuItem" && available == true && category->slug.current == $categorySlug] | order(order asc) {
  ` + menuItemFields + `
}`

	featuredMenuItemsQuery = `*[_type == "menuItem" && featured == true && available == true] | order(order asc) {
  ` + menuItemFields + `
}`

	siteSettingsQuery = `*[_type == "siteSettings"][0] {
  _id, title, description, phone, email, address, hours, socialMedia, shareButtons,
  contactFormRecipients, logo
}`

	pageBySlugQuery = `*[_type == "page" && slug.current == $slug][0] {
  _id, title, slug, sections, seo
}`

	allPagesQuery = `*[_type == "page"] {
  _id, title, slug
}`

	faqsQuery = `*[_type == "faq"] | order(order asc) {
  _id, question, answer, category, order
}`

	featuredTestimonialsQuery = `*[_type == "testimonial" && featured == true] | order(order asc) {
  _id, quote, author, authorTitle, rating, featured, order
}`
)
