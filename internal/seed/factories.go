package seed

import (
	"fmt"
	"math/rand"
	"time"

	"bayaaz/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Sample couplet banks per language. Original placeholder verse, not quotes.
// The point is plausible shape (two hemistichs, optional meaning), not literature.
var coupletBank = map[string][]models.Couplet{
	models.LangEnglish: {
		{Couplet: "The night unwinds its silver thread across the sleeping town,\nand every window holds a lamp that will not be put down."},
		{Couplet: "I asked the river where it goes; it only hurried on —\nthe answer to a moving thing is never where it's gone.", Meaning: "Restlessness cannot be explained by destination."},
		{Couplet: "Between the letter and the reply, a whole season passed;\nthe ink had dried to autumn before the first word was asked."},
		{Couplet: "Grief came to my door like a guest who had lost his way;\nI fed him, and he liked the house, and grief decided to stay."},
		{Couplet: "The moon does not divide its light by courtyard or by creed;\nit falls the same on palaces and on the beggar's bead.", Meaning: "Light, like grace, is indifferent to rank."},
		{Couplet: "You counted all my faults aloud and I agreed with each;\nwhat you could never count was how far faults can reach."},
		{Couplet: "Dawn is a rumor first, then proof, then ordinary light;\nso too the heart believes in love only after the night."},
	},
	models.LangHindi: {
		{Couplet: "रात ने फिर वही पुराना दिया जलाया है,\nहर खिड़की में किसी इंतज़ार का साया है।"},
		{Couplet: "नदी से पूछा ठिकाना, वो बहती चली गई,\nबहती हुई चीज़ों का कोई पता नहीं होता।", Meaning: "बेचैनी का जवाब मंज़िल में नहीं मिलता।"},
		{Couplet: "ख़त और जवाब के बीच एक मौसम गुज़र गया,\nपहला लफ़्ज़ पूछने से पहले स्याही सूख गई।"},
		{Couplet: "ग़म मेरे दर पे आया था रस्ता भूल कर,\nघर उसे पसंद आया, अब वहीं रहता है।"},
		{Couplet: "चाँद अपनी रोशनी को बाँटता नहीं कभी,\nमहलों पर भी वही, फ़कीर पर भी वही।", Meaning: "रोशनी रुतबा नहीं देखती।"},
		{Couplet: "तुमने गिनाए मेरे सब ऐब, मैंने माने भी,\nजो गिन न सके वो था ऐबों का सफ़र।"},
	},
	models.LangUrdu: {
		{Couplet: "رات نے پھر وہی پرانا دیا جلایا ہے،\nہر کھڑکی میں کسی انتظار کا سایہ ہے۔"},
		{Couplet: "دریا سے پوچھا ٹھکانہ، وہ بہتا چلا گیا،\nبہتی ہوئی چیزوں کا کوئی پتا نہیں ہوتا۔", Meaning: "بے چینی کا جواب منزل میں نہیں ملتا۔"},
		{Couplet: "خط اور جواب کے بیچ اک موسم گزر گیا،\nپہلا لفظ پوچھنے سے پہلے سیاہی سوکھ گئی۔"},
		{Couplet: "غم میرے در پہ آیا تھا رستہ بھول کر،\nگھر اسے پسند آیا، اب وہیں رہتا ہے۔"},
		{Couplet: "چاند اپنی روشنی کو بانٹتا نہیں کبھی،\nمحلوں پر بھی وہی، فقیر پر بھی وہی۔", Meaning: "روشنی رتبہ نہیں دیکھتی۔"},
		{Couplet: "تم نے گنائے میرے سب عیب، میں نے مانے بھی،\nجو گن نہ سکے وہ تھا عیبوں کا سفر۔"},
	},
}

// Title banks per language, paired by index so translations line up.
var titleBank = map[string][]string{
	models.LangEnglish: {"The Night's Lamp", "Ask the River", "A Season of Ink", "Grief, My Guest", "Moonlight Owes No One", "Ledger of Faults", "Rumor of Dawn"},
	models.LangHindi:   {"रात का दिया", "नदी से पूछो", "स्याही का मौसम", "ग़म मेरा मेहमान", "चाँदनी किसी की नहीं", "ऐबों का हिसाब", "सुबह की अफ़वाह"},
	models.LangUrdu:    {"رات کا دیا", "دریا سے پوچھو", "سیاہی کا موسم", "غم میرا مہمان", "چاندنی کسی کی نہیں", "عیبوں کا حساب", "صبح کی افواہ"},
}

// Romanized slug stems, index-aligned with titleBank.
var slugStems = []string{"raat-ka-diya", "nadi-se-poochho", "syahi-ka-mausam", "gham-mera-mehmaan", "chandni-kisi-ki-nahin", "aibon-ka-hisaab", "subah-ki-afwah"}

var topicBank = []string{"love", "separation", "night", "moon", "dawn", "hope", "grief", "beloved", "longing", "homeland", "rain", "spring", "silence", "memory"}

// CreateReader constructs and persists a reader account.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateReader(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "Password123$ufi"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123$ufi"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	if f.rng.Float32() < 0.5 {
		user.ProfilePicture = &models.Image{
			PublicID: fmt.Sprintf("seed/%s", gofakeit.UUID()),
			URL:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPoem constructs a poem for the given poet in the given category but
// does not persist it. Useful for batching.
func (f *Factory) BuildPoem(poet *models.User, category string, overrides ...func(*models.Poem)) *models.Poem {
	idx := f.rng.Intn(len(slugStems))
	langs := f.pickLanguages()

	title := models.LocalizedText{}
	slug := models.LocalizedText{}
	content := models.LocalizedVerses{}
	for _, lang := range langs {
		title[lang] = titleBank[lang][idx]
		slug[lang] = fmt.Sprintf("%s-%d", slugStems[idx], f.rng.Intn(100000))
		content[lang] = f.pickCouplets(lang)
	}

	poem := &models.Poem{
		Status:        models.StatusPublished,
		PoetID:        poet.ID,
		Title:         title,
		Slug:          slug,
		Content:       content,
		Topics:        f.pickTopics(),
		Category:      category,
		ViewsCount:    f.rng.Intn(5000),
		BookmarkCount: 0,
	}

	// a slice of the catalog stays in draft
	if f.rng.Float32() < 0.15 {
		poem.Status = models.StatusDraft
	}

	if f.rng.Float32() < 0.4 {
		seedID := gofakeit.UUID()
		poem.CoverImage = &models.Image{
			PublicID: fmt.Sprintf("seed/%s", seedID),
			URL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/600", seedID),
		}
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 365
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	poem.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(poem)
	}
	return poem
}

// CreatePoemsBatch persists multiple poems in chunked inserts.
func (f *Factory) CreatePoemsBatch(poems []*models.Poem) error {
	if len(poems) == 0 {
		return nil
	}
	batch := f.opts.BatchSize
	if batch <= 0 {
		batch = 100
	}
	return f.db.CreateInBatches(&poems, batch).Error
}

// pickLanguages returns a non-empty subset of the supported languages.
func (f *Factory) pickLanguages() []string {
	all := models.Languages()
	switch f.rng.Intn(4) {
	case 0:
		return all
	case 1:
		return []string{all[f.rng.Intn(len(all))]}
	default:
		// drop one language
		skip := f.rng.Intn(len(all))
		langs := make([]string, 0, len(all)-1)
		for i, lang := range all {
			if i != skip {
				langs = append(langs, lang)
			}
		}
		return langs
	}
}

func (f *Factory) pickCouplets(lang string) []models.Couplet {
	bank := coupletBank[lang]
	n := 2 + f.rng.Intn(4)
	if n > len(bank) {
		n = len(bank)
	}
	picked := make([]models.Couplet, 0, n)
	for _, i := range f.rng.Perm(len(bank))[:n] {
		picked = append(picked, bank[i])
	}
	return picked
}

func (f *Factory) pickTopics() models.StringList {
	n := 1 + f.rng.Intn(3)
	topics := make(models.StringList, 0, n)
	for _, i := range f.rng.Perm(len(topicBank))[:n] {
		topics = append(topics, topicBank[i])
	}
	return topics
}
