package cms

import "context"

// ResolvePage materializes the page's full slot list into cards.
//
// Every slot in the catalog yields exactly one CardView, in catalog order.
// When both an article and a recipe hold the same slot the article wins;
// that state cannot arise through validated assignment, but the resolver
// still picks deterministically.
func (s *service) ResolvePage(ctx context.Context, page Page) (*PageView, error) {
	if !page.IsValid() {
		return nil, &UnknownPageError{Page: page}
	}

	content, err := s.repository.ListPublishedWithSlotsForPage(ctx, page)
	if err != nil {
		return nil, err
	}

	articlesBySlot := make(map[Slot]*Article, len(content.Articles))
	for _, a := range content.Articles {
		if a.CardPosition == nil {
			continue
		}
		if _, taken := articlesBySlot[*a.CardPosition]; !taken {
			articlesBySlot[*a.CardPosition] = a
		}
	}
	recipesBySlot := make(map[Slot]*Recipe, len(content.Recipes))
	for _, r := range content.Recipes {
		if r.CardPosition == nil {
			continue
		}
		if _, taken := recipesBySlot[*r.CardPosition]; !taken {
			recipesBySlot[*r.CardPosition] = r
		}
	}

	slots := SlotsForPage(page)
	view := &PageView{
		Page:  page,
		Cards: make([]CardView, 0, len(slots)),
	}

	for _, slot := range slots {
		card := CardView{Position: slot}

		if article, ok := articlesBySlot[slot]; ok {
			ct := ContentTypeArticle
			card.ContentType = &ct
			card.Article = articleCard(article)
		} else if recipe, ok := recipesBySlot[slot]; ok {
			ct := ContentTypeRecipe
			card.ContentType = &ct
			card.Recipe = recipeCard(recipe)
		} else {
			view.EmptyPositions = append(view.EmptyPositions, slot)
		}

		view.Cards = append(view.Cards, card)
	}

	return view, nil
}

func articleCard(a *Article) *ArticleCard {
	return &ArticleCard{
		ID:           a.ID,
		Title:        a.Title,
		Slug:         a.Slug,
		HeroImageURL: a.HeroImageURL,
		Category:     a.Category,
		FactoidData:  a.FactoidData,
	}
}

func recipeCard(r *Recipe) *RecipeCard {
	return &RecipeCard{
		ID:           r.ID,
		Title:        r.Title,
		Slug:         r.Slug,
		HeroImageURL: r.HeroImageURL,
		Category:     r.Category,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		IsFeatured:   r.IsFeatured,
	}
}
