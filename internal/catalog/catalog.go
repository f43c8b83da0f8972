// Package catalog holds the static, versioned item definitions for the three
// assessment instruments.
//
// The item tables are read-only at run time. Reverse-coding flags follow the
// official scoring keys for each instrument.
package catalog

import "github.com/FluxWard/StabilityPipe/internal/models"

// Version identifies the item-bank revision served by this build.
const Version = "2024.1"

// hexacoItems is the HEXACO-60 inventory: six facets, ten items each,
// answered on a 1-5 scale.
var hexacoItems = []models.HexacoItem{
	// Honesty-Humility (items 1-10)
	{ID: 1, Facet: models.FacetHonestyHumility, Text: "I wouldn't use flattery to get a raise or promotion at work, even if I thought it would succeed.", ReverseCoded: false},
	{ID: 2, Facet: models.FacetHonestyHumility, Text: "If I want something from someone, I will laugh at that person's worst jokes.", ReverseCoded: true},
	{ID: 3, Facet: models.FacetHonestyHumility, Text: "I wouldn't pretend to like someone just to get that person to do favors for me.", ReverseCoded: false},
	{ID: 4, Facet: models.FacetHonestyHumility, Text: "If I knew that I could never get caught, I would be willing to steal a million dollars.", ReverseCoded: true},
	{ID: 5, Facet: models.FacetHonestyHumility, Text: "I would never accept a bribe, even if it were very large.", ReverseCoded: false},
	{ID: 6, Facet: models.FacetHonestyHumility, Text: "I'd be tempted to use counterfeit money, if I were sure I could get away with it.", ReverseCoded: true},
	{ID: 7, Facet: models.FacetHonestyHumility, Text: "Having a lot of money is not especially important to me.", ReverseCoded: false},
	{ID: 8, Facet: models.FacetHonestyHumility, Text: "I would get a lot of pleasure from owning expensive luxury goods.", ReverseCoded: true},
	{ID: 9, Facet: models.FacetHonestyHumility, Text: "I think that I am entitled to more respect than the average person is.", ReverseCoded: true},
	{ID: 10, Facet: models.FacetHonestyHumility, Text: "I want people to know that I am an important person of high status.", ReverseCoded: true},
	// Emotionality (items 11-20)
	{ID: 11, Facet: models.FacetEmotionality, Text: "I would feel afraid if I had to travel in bad weather conditions.", ReverseCoded: false},
	{ID: 12, Facet: models.FacetEmotionality, Text: "I don't mind doing jobs that involve dangerous work.", ReverseCoded: true},
	{ID: 13, Facet: models.FacetEmotionality, Text: "When it comes to physical danger, I am very fearful.", ReverseCoded: false},
	{ID: 14, Facet: models.FacetEmotionality, Text: "Even in an emergency I wouldn't feel like panicking.", ReverseCoded: true},
	{ID: 15, Facet: models.FacetEmotionality, Text: "I sometimes can't help worrying about little things.", ReverseCoded: false},
	{ID: 16, Facet: models.FacetEmotionality, Text: "I rarely, if ever, have trouble sleeping due to stress or anxiety.", ReverseCoded: true},
	{ID: 17, Facet: models.FacetEmotionality, Text: "I get very anxious when waiting to hear about an important decision.", ReverseCoded: false},
	{ID: 18, Facet: models.FacetEmotionality, Text: "I rarely feel any strong emotions.", ReverseCoded: true},
	{ID: 19, Facet: models.FacetEmotionality, Text: "I feel like crying when I see other people crying.", ReverseCoded: false},
	{ID: 20, Facet: models.FacetEmotionality, Text: "I can remain calm even in situations where most people would become anxious.", ReverseCoded: true},
	// Extraversion (items 21-30)
	{ID: 21, Facet: models.FacetExtraversion, Text: "I rarely express my opinions in group meetings.", ReverseCoded: true},
	{ID: 22, Facet: models.FacetExtraversion, Text: "In social situations, I'm usually the one who makes the first move.", ReverseCoded: false},
	{ID: 23, Facet: models.FacetExtraversion, Text: "When I'm in a group of people, I'm often the one who speaks on behalf of the group.", ReverseCoded: false},
	{ID: 24, Facet: models.FacetExtraversion, Text: "I tend to feel quite self-conscious when speaking in front of a group of people.", ReverseCoded: true},
	{ID: 25, Facet: models.FacetExtraversion, Text: "I prefer jobs that involve active social interaction to those that involve working alone.", ReverseCoded: false},
	{ID: 26, Facet: models.FacetExtraversion, Text: "I avoid making small talk with people.", ReverseCoded: true},
	{ID: 27, Facet: models.FacetExtraversion, Text: "I enjoy having lots of people around to talk with.", ReverseCoded: false},
	{ID: 28, Facet: models.FacetExtraversion, Text: "I find it difficult to keep a conversation going with someone I've just met.", ReverseCoded: true},
	{ID: 29, Facet: models.FacetExtraversion, Text: "Most people are more upbeat and dynamic than I generally am.", ReverseCoded: true},
	{ID: 30, Facet: models.FacetExtraversion, Text: "People often tell me that I should try to cheer up.", ReverseCoded: true},
	// Agreeableness (items 31-40)
	{ID: 31, Facet: models.FacetAgreeableness, Text: "I rarely hold a grudge, even against people who have badly wronged me.", ReverseCoded: false},
	{ID: 32, Facet: models.FacetAgreeableness, Text: "My attitude toward people who have treated me badly is 'forgive and forget'.", ReverseCoded: false},
	{ID: 33, Facet: models.FacetAgreeableness, Text: "If someone has cheated me once, I will always feel suspicious of that person.", ReverseCoded: true},
	{ID: 34, Facet: models.FacetAgreeableness, Text: "I tend to be lenient in judging other people.", ReverseCoded: false},
	{ID: 35, Facet: models.FacetAgreeableness, Text: "I am usually quite flexible in my opinions when people disagree with me.", ReverseCoded: false},
	{ID: 36, Facet: models.FacetAgreeableness, Text: "People sometimes tell me that I am too critical of others.", ReverseCoded: true},
	{ID: 37, Facet: models.FacetAgreeableness, Text: "I generally accept people's faults without complaining about them.", ReverseCoded: false},
	{ID: 38, Facet: models.FacetAgreeableness, Text: "When people tell me that I'm wrong, my first reaction is to argue with them.", ReverseCoded: true},
	{ID: 39, Facet: models.FacetAgreeableness, Text: "People sometimes tell me that I'm too stubborn.", ReverseCoded: true},
	{ID: 40, Facet: models.FacetAgreeableness, Text: "I find it hard to fully forgive someone who has done something mean to me.", ReverseCoded: true},
	// Conscientiousness (items 41-50)
	{ID: 41, Facet: models.FacetConscientiousness, Text: "I plan ahead and organize things, to avoid scrambling at the last minute.", ReverseCoded: false},
	{ID: 42, Facet: models.FacetConscientiousness, Text: "I often push myself very hard when trying to achieve a goal.", ReverseCoded: false},
	{ID: 43, Facet: models.FacetConscientiousness, Text: "When working on something, I don't pay much attention to small details.", ReverseCoded: true},
	{ID: 44, Facet: models.FacetConscientiousness, Text: "I make decisions based on the feeling of the moment rather than on careful thought.", ReverseCoded: true},
	{ID: 45, Facet: models.FacetConscientiousness, Text: "When working, I sometimes have difficulties due to being disorganized.", ReverseCoded: true},
	{ID: 46, Facet: models.FacetConscientiousness, Text: "I do only the minimum amount of work needed to get by.", ReverseCoded: true},
	{ID: 47, Facet: models.FacetConscientiousness, Text: "I always try to be accurate in my work, even at the expense of time.", ReverseCoded: false},
	{ID: 48, Facet: models.FacetConscientiousness, Text: "I make a lot of mistakes because I don't think before I act.", ReverseCoded: true},
	{ID: 49, Facet: models.FacetConscientiousness, Text: "People often call me a perfectionist.", ReverseCoded: false},
	{ID: 50, Facet: models.FacetConscientiousness, Text: "I prefer to do whatever comes to mind, rather than stick to a plan.", ReverseCoded: true},
	// Openness to Experience (items 51-60)
	{ID: 51, Facet: models.FacetOpennessToExperience, Text: "I would enjoy creating a work of art, such as a novel, a song, or a painting.", ReverseCoded: false},
	{ID: 52, Facet: models.FacetOpennessToExperience, Text: "People have often told me that I have a good imagination.", ReverseCoded: false},
	{ID: 53, Facet: models.FacetOpennessToExperience, Text: "I don't think of myself as the artistic or creative type.", ReverseCoded: true},
	{ID: 54, Facet: models.FacetOpennessToExperience, Text: "I think that paying attention to radical ideas is a waste of time.", ReverseCoded: true},
	{ID: 55, Facet: models.FacetOpennessToExperience, Text: "I like people who have unconventional views.", ReverseCoded: false},
	{ID: 56, Facet: models.FacetOpennessToExperience, Text: "I find it boring to discuss philosophy.", ReverseCoded: true},
	{ID: 57, Facet: models.FacetOpennessToExperience, Text: "I would be quite bored by a visit to an art gallery.", ReverseCoded: true},
	{ID: 58, Facet: models.FacetOpennessToExperience, Text: "I'm interested in learning about the history and politics of other countries.", ReverseCoded: false},
	{ID: 59, Facet: models.FacetOpennessToExperience, Text: "I've never really enjoyed looking at a piece of art.", ReverseCoded: true},
	{ID: 60, Facet: models.FacetOpennessToExperience, Text: "I sometimes like to just watch the wind as it blows through the trees.", ReverseCoded: false},
}

// dassItems is the DASS-21 short form, answered on a 0-3 frequency scale.
// Scale assignments per the official scoring key:
// Depression: 3, 5, 10, 13, 16, 17, 21
// Anxiety: 2, 4, 7, 9, 15, 19, 20
// Stress: 1, 6, 8, 11, 12, 14, 18
var dassItems = []models.DassItem{
	{ID: 1, Scale: models.ScaleStress, Text: "I found it hard to wind down."},
	{ID: 2, Scale: models.ScaleAnxiety, Text: "I was aware of dryness of my mouth."},
	{ID: 3, Scale: models.ScaleDepression, Text: "I couldn't seem to experience any positive feeling at all."},
	{ID: 4, Scale: models.ScaleAnxiety, Text: "I experienced breathing difficulty (e.g., excessively rapid breathing, breathlessness in the absence of physical exertion)."},
	{ID: 5, Scale: models.ScaleDepression, Text: "I found it difficult to work up the initiative to do things."},
	{ID: 6, Scale: models.ScaleStress, Text: "I tended to over-react to situations."},
	{ID: 7, Scale: models.ScaleAnxiety, Text: "I experienced trembling (e.g., in the hands)."},
	{ID: 8, Scale: models.ScaleStress, Text: "I felt that I was using a lot of nervous energy."},
	{ID: 9, Scale: models.ScaleAnxiety, Text: "I was worried about situations in which I might panic and make a fool of myself."},
	{ID: 10, Scale: models.ScaleDepression, Text: "I felt that I had nothing to look forward to."},
	{ID: 11, Scale: models.ScaleStress, Text: "I found myself getting agitated."},
	{ID: 12, Scale: models.ScaleStress, Text: "I found it difficult to relax."},
	{ID: 13, Scale: models.ScaleDepression, Text: "I felt down-hearted and blue."},
	{ID: 14, Scale: models.ScaleStress, Text: "I was intolerant of anything that kept me from getting on with what I was doing."},
	{ID: 15, Scale: models.ScaleAnxiety, Text: "I felt I was close to panic."},
	{ID: 16, Scale: models.ScaleDepression, Text: "I was unable to become enthusiastic about anything."},
	{ID: 17, Scale: models.ScaleDepression, Text: "I felt I wasn't worth much as a person."},
	{ID: 18, Scale: models.ScaleStress, Text: "I felt that I was rather touchy."},
	{ID: 19, Scale: models.ScaleAnxiety, Text: "I was aware of the action of my heart in the absence of physical exertion (e.g., sense of heart rate increase, heart missing a beat)."},
	{ID: 20, Scale: models.ScaleAnxiety, Text: "I felt scared without any good reason."},
	{ID: 21, Scale: models.ScaleDepression, Text: "I felt that life was meaningless."},
}

// teiqueItems is the TEIQue-SF inventory, answered on a 1-7 agreement scale.
// Factor item counts are unequal.
var teiqueItems = []models.TeiqueItem{
	{ID: 1, Factor: models.FactorWellbeing, Text: "Expressing my emotions with words is not a problem for me.", ReverseCoded: false},
	{ID: 2, Factor: models.FactorSelfControl, Text: "I often find it difficult to see things from another person's viewpoint.", ReverseCoded: true},
	{ID: 3, Factor: models.FactorEmotionality, Text: "On the whole, I'm a highly motivated person.", ReverseCoded: false},
	{ID: 4, Factor: models.FactorSociability, Text: "I usually find it difficult to regulate my emotions.", ReverseCoded: true},
	{ID: 5, Factor: models.FactorWellbeing, Text: "I generally don't find life enjoyable.", ReverseCoded: true},
	{ID: 6, Factor: models.FactorSociability, Text: "I can deal effectively with people.", ReverseCoded: false},
	{ID: 7, Factor: models.FactorSelfControl, Text: "I tend to change my mind frequently.", ReverseCoded: true},
	{ID: 8, Factor: models.FactorEmotionality, Text: "Many times, I can't figure out what emotion I'm feeling.", ReverseCoded: true},
	{ID: 9, Factor: models.FactorWellbeing, Text: "I feel that I have a number of good qualities.", ReverseCoded: false},
	{ID: 10, Factor: models.FactorSociability, Text: "I often find it difficult to stand up for my rights.", ReverseCoded: true},
	{ID: 11, Factor: models.FactorSelfControl, Text: "I'm usually able to influence the way other people feel.", ReverseCoded: false},
	{ID: 12, Factor: models.FactorWellbeing, Text: "On the whole, I have a gloomy perspective on most things.", ReverseCoded: true},
	{ID: 13, Factor: models.FactorEmotionality, Text: "Those close to me often complain that I don't treat them right.", ReverseCoded: true},
	{ID: 14, Factor: models.FactorSociability, Text: "I often find it difficult to adjust my life according to the circumstances.", ReverseCoded: true},
	{ID: 15, Factor: models.FactorSelfControl, Text: "On the whole, I'm able to deal with stress.", ReverseCoded: false},
	{ID: 16, Factor: models.FactorEmotionality, Text: "I often find it difficult to show my affection to those close to me.", ReverseCoded: true},
	{ID: 17, Factor: models.FactorSociability, Text: "I'm normally able to 'get into someone's shoes' and experience their emotions.", ReverseCoded: false},
	{ID: 18, Factor: models.FactorSelfControl, Text: "I normally find it difficult to keep myself motivated.", ReverseCoded: true},
	{ID: 19, Factor: models.FactorEmotionality, Text: "I'm usually able to find ways to control my emotions when I want to.", ReverseCoded: false},
	{ID: 20, Factor: models.FactorWellbeing, Text: "On the whole, I'm pleased with my life.", ReverseCoded: false},
	{ID: 21, Factor: models.FactorSociability, Text: "I would describe myself as a good negotiator.", ReverseCoded: false},
	{ID: 22, Factor: models.FactorSelfControl, Text: "I tend to get involved in things I later wish I could get out of.", ReverseCoded: true},
	{ID: 23, Factor: models.FactorEmotionality, Text: "I often pause and think about my feelings.", ReverseCoded: false},
	{ID: 24, Factor: models.FactorWellbeing, Text: "I believe I'm full of personal strengths.", ReverseCoded: false},
	{ID: 25, Factor: models.FactorSociability, Text: "I tend to 'back down' even if I know I'm right.", ReverseCoded: true},
	{ID: 26, Factor: models.FactorSelfControl, Text: "I don't seem to have any power at all over other people's feelings.", ReverseCoded: true},
	{ID: 27, Factor: models.FactorWellbeing, Text: "I generally believe that things will work out fine in my life.", ReverseCoded: false},
	{ID: 28, Factor: models.FactorEmotionality, Text: "I find it difficult to bond well even with those close to me.", ReverseCoded: true},
	{ID: 29, Factor: models.FactorSelfControl, Text: "Generally, I'm able to adapt to new environments.", ReverseCoded: false},
	{ID: 30, Factor: models.FactorEmotionality, Text: "Others admire me for being relaxed.", ReverseCoded: false},
}

// HexacoItems returns the HEXACO-60 item table. Callers must not modify the
// returned slice.
func HexacoItems() []models.HexacoItem {
	return hexacoItems
}

// DassItems returns the DASS-21 item table. Callers must not modify the
// returned slice.
func DassItems() []models.DassItem {
	return dassItems
}

// TeiqueItems returns the TEIQue-SF item table. Callers must not modify the
// returned slice.
func TeiqueItems() []models.TeiqueItem {
	return teiqueItems
}

// HexacoItemByID looks up a HEXACO item by id.
func HexacoItemByID(id int) (models.HexacoItem, bool) {
	if id < 1 || id > len(hexacoItems) {
		return models.HexacoItem{}, false
	}
	return hexacoItems[id-1], true
}

// DassItemByID looks up a DASS item by id.
func DassItemByID(id int) (models.DassItem, bool) {
	if id < 1 || id > len(dassItems) {
		return models.DassItem{}, false
	}
	return dassItems[id-1], true
}

// TeiqueItemByID looks up a TEIQue item by id.
func TeiqueItemByID(id int) (models.TeiqueItem, bool) {
	if id < 1 || id > len(teiqueItems) {
		return models.TeiqueItem{}, false
	}
	return teiqueItems[id-1], true
}
