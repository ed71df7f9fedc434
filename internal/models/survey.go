// Package models defines the canonical survey schema shared by the pipeline and its consumers.
package models

import "fmt"

// Canonical column identifiers.
const (
	ColumnNationality      = "nationality"
	ColumnCountry          = "country"
	ColumnAgeGroup         = "age_group"
	ColumnFamilySituation  = "family_situation"
	ColumnHouseholdIncome  = "household_income_in_€"
	ColumnTravelFrequency  = "travel_frequency"
	ColumnBeenToJapan      = "been_to_Japan"
	ColumnJapanVacDuration = "Japan_vac_duration"
	ColumnRegionPrefs      = "most_wanted_pref_to_visit"

	ColumnRatingCultureHistory  = "rating_interest_culture_and_history"
	ColumnRatingFood            = "rating_interest_food"
	ColumnRatingNatureHiking    = "rating_interest_nature_hiking"
	ColumnRatingShoppingTechno  = "rating_interest_shopping_and_techno"
	ColumnRatingEventsFestivals = "rating_interest_events_and_festivals"
	ColumnRatingWellness        = "rating_interest_wellness"
	ColumnRatingThemePark       = "rating_interest_theme_park"

	ColumnJapanBudget          = "Japan_budget_per_week"
	ColumnJapanAccommodation   = "Japan_prefered_accomodation"
	ColumnJapanDifficulties    = "Japan_most_difficulties"
	ColumnAltDestination       = "alternative_destination"
	ColumnAltDestReason        = "alt_dest_main_reason"
	ColumnAltDestAccommodation = "alt_dest_prefered_accomodation"
	ColumnAltDestBudget        = "alt_dest_budget_per_week"
	ColumnAltDestTransport     = "alt_dest_transportation"
	ColumnTripPrep             = "trip_prep"
	ColumnBookingChannel       = "booking_trip_channel"
	ColumnInfluentialReason    = "most_influencial_reason_to_choose_dest"
	ColumnAltDestDifficulties  = "alt_dest_most_difficulties"
	ColumnImprovementIdeas     = "recomendation_to_improve_attractiveness"
)

// RankedWidth is the number of ranked columns produced for every multi-select family.
const RankedWidth = 5

// RatingColumns lists the Likert interest questions in questionnaire order.
var RatingColumns = []string{
	ColumnRatingCultureHistory,
	ColumnRatingFood,
	ColumnRatingNatureHiking,
	ColumnRatingShoppingTechno,
	ColumnRatingEventsFestivals,
	ColumnRatingWellness,
	ColumnRatingThemePark,
}

// MultiSelectFamily describes a raw multi-select column and the ranked columns derived from it.
type MultiSelectFamily struct {
	Source string
	Prefix string
	Width  int
}

// Columns returns the ranked column names <Prefix>_1..Width.
func (f MultiSelectFamily) Columns() []string {
	return RankedColumns(f.Prefix, f.Width)
}

// MultiSelectFamilies are decomposed in this order; the raw columns are dropped afterwards.
var MultiSelectFamilies = []MultiSelectFamily{
	{Source: ColumnRegionPrefs, Prefix: ColumnRegionPrefs, Width: RankedWidth},
	{Source: ColumnJapanDifficulties, Prefix: ColumnJapanDifficulties, Width: RankedWidth},
	{Source: ColumnAltDestDifficulties, Prefix: ColumnAltDestDifficulties, Width: RankedWidth},
}

// RankedColumns returns prefix_1 .. prefix_k.
func RankedColumns(prefix string, k int) []string {
	out := make([]string, k)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d", prefix, i+1)
	}

	return out
}

// QuestionColumns maps the questionnaire's question texts to canonical identifiers.
// Keys are matched after whitespace is collapsed, so stray spaces in exports do not matter.
var QuestionColumns = map[string]string{
	"Quel est votre nationalité?":                                                                                                                            ColumnNationality,
	"Dans quel pays résidez-vous actuellement ?":                                                                                                             ColumnCountry,
	"Quelle est votre tranche d’âge ?":                                                                                                                       ColumnAgeGroup,
	"Quelle est votre situation familiale ?":                                                                                                                 ColumnFamilySituation,
	"Quelle est votre tranche de revenus mensuels nets du foyer ?":                                                                                           ColumnHouseholdIncome,
	"À quelle fréquence voyagez vous à l’étranger (hors Europe) ?":                                                                                           ColumnTravelFrequency,
	"Avez-vous déjà voyagé au Japon ?":                                                                                                                       ColumnBeenToJapan,
	"Quelle durée de séjour avez-vous prévue ?":                                                                                                              ColumnJapanVacDuration,
	"Quelles régions du Japon vous intéressent le plus ? (Choisissez 3 max.)":                                                                                ColumnRegionPrefs,
	motivation + "[Découverte de la culture et de l’histoire (temples, traditions, samouraïs, geishas, etc.)]":                                               ColumnRatingCultureHistory,
	motivation + "[Gastronomie japonaise (sushis, ramen, wagyu, street food, etc.)]":                                                                         ColumnRatingFood,
	motivation + "[Paysages naturels et randonnées (montagnes, volcans, cerisiers en fleurs, etc.)]":                                                         ColumnRatingNatureHiking,
	motivation + "[Technologie, innovation et shopping (Tokyo high-tech, Akihabara, mode, etc.)]":                                                            ColumnRatingShoppingTechno,
	motivation + "[Festivals et événements (matsuri, concerts, sport, sumo, etc.)]":                                                                          ColumnRatingEventsFestivals,
	motivation + "[Bien-être (onsen, ryokan, détente)]":                                                                                                      ColumnRatingWellness,
	motivation + "[Parc d'attraction (Disneyland, Universal...)]":                                                                                            ColumnRatingThemePark,
	"Quel budget global prévoyez vous pour un voyage au Japon (par personne et par semaine , hors vol international ) ?":                                     ColumnJapanBudget,
	"Parmi les types d’hébergement suivants, lequel correspond le mieux à vos préférences principales pour un séjour au Japon ?":                             ColumnJapanAccommodation,
	"Quels sont les principaux freins ou difficultés que vous rencontrez (ou pourriez rencontrer) lors d’un voyage au Japon ? (Choisissez 3 max.)":           ColumnJapanDifficulties,
	"Si vous ne pouviez pas voyager au Japon, quelle destination alternative choisiriez-vous ?":                                                              ColumnAltDestination,
	"Quelle a été la principale raison pour laquelle vous auriez choisi cette destination plutôt que le Japon ?":                                             ColumnAltDestReason,
	"Parmi les types d’hébergement suivants, lequel correspond le mieux à vos préférences principales lors de vos voyages dans d’autres pays (hors Japon) ?": ColumnAltDestAccommodation,
	"Lors de vos voyages dans d’autres pays (hors Japon), quel est votre budget moyen par semaine et par personne , hors vol international ?":                ColumnAltDestBudget,
	"Lors de vos voyages dans d’autres pays (hors Japon), quel(s) mode(s) de transport utilisez-vous le plus souvent ?":                                      ColumnAltDestTransport,
	"Comment préparez-vous vos voyages en général ? (Multiple choix possible)":                                                                               ColumnTripPrep,
	"Quel canal utilisez-vous le plus pour réserver vos voyages ?":                                                                                           ColumnBookingChannel,
	"Parmi les éléments suivants, lequel influence le plus votre choix de destination de vacances (hors Japon) ?":                                            ColumnInfluentialReason,
	"Lorsque vous voyagez en dehors du Japon, quelles sont les principales difficultés que vous rencontrez habituellement ? (Choisissez jusqu’à 3 réponses)": ColumnAltDestDifficulties,
	"Qu’est-ce qui rendrait le Japon plus attractif comme destination pour vous ?":                                                                           ColumnImprovementIdeas,
}

const motivation = "À quel point ces motivations influencent elles votre envie de voyager au Japon ? "

// RequiredColumns must be present (after renaming) for a run to start.
var RequiredColumns = []string{
	ColumnNationality,
	ColumnCountry,
	ColumnAgeGroup,
	ColumnFamilySituation,
	ColumnHouseholdIncome,
	ColumnTravelFrequency,
	ColumnBeenToJapan,
	ColumnJapanVacDuration,
	ColumnRegionPrefs,
	ColumnRatingCultureHistory,
	ColumnRatingFood,
	ColumnRatingNatureHiking,
	ColumnRatingShoppingTechno,
	ColumnRatingEventsFestivals,
	ColumnRatingWellness,
	ColumnRatingThemePark,
	ColumnJapanBudget,
	ColumnJapanAccommodation,
	ColumnJapanDifficulties,
	ColumnAltDestination,
	ColumnAltDestReason,
	ColumnAltDestAccommodation,
	ColumnAltDestBudget,
	ColumnAltDestTransport,
	ColumnTripPrep,
	ColumnBookingChannel,
	ColumnInfluentialReason,
	ColumnAltDestDifficulties,
}
