package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Parag0712/levalsupermind/internal/model"
	"github.com/Parag0712/levalsupermind/internal/translation"
	"github.com/Parag0712/levalsupermind/internal/utils"
)

// handleTranslate translates a blog draft into the requested languages
func (a *API) handleTranslate(c *gin.Context) {
	var req model.TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "title and content are required")
		return
	}

	translations, err := a.translator.Translate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, translation.ErrInvalidRequest) {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[Translate] Request failed: %v", err)
		utils.Error(c, http.StatusInternalServerError, "Translation failed")
		return
	}

	utils.Success(c, gin.H{
		"message":      "Translations completed successfully",
		"translations": translations,
	})
}
