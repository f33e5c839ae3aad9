package hubbflow

import (
	"github.com/matzehuels/seqdiag/pkg/diagram"
)

var (
	em    = diagram.Emphasized
	plain = diagram.Plain
)

func (s *script) title() {
	s.run("title", func() error { return s.d.AddTitle(Title, Subtitle) })
}

func (s *script) participants() {
	s.run("participants", func() error {
		return s.d.RegisterParticipants(
			diagram.ParticipantSpec{
				ID: Region, Name: "Region", Subtitle: "(Producent + mottagare)",
				Color: s.color(diagram.ColorRegionParticipant), BoxColor: s.color(diagram.ColorRegionBox),
			},
			diagram.ParticipantSpec{
				ID: Hubb, Name: "Hubb", Subtitle: "(Standard + benchmark + transport)",
				Color: s.color(diagram.ColorHubbParticipant), BoxColor: s.color(diagram.ColorHubbBox),
			},
			diagram.ParticipantSpec{
				ID: SPE, Name: "SPE", Subtitle: "(Federerad beräkning)",
				Color: s.color(diagram.ColorSPEParticipant), BoxColor: s.color(diagram.ColorSPEBox),
			},
			diagram.ParticipantSpec{
				ID: SoS, Name: "Socialstyrelsen", Subtitle: "(SoS)",
				Color: s.color(diagram.ColorSoSParticipant), BoxColor: s.color(diagram.ColorExternalBox),
			},
			diagram.ParticipantSpec{
				ID: Extern, Name: "Övriga externa", Subtitle: "(Forskning m.fl.)",
				Color: s.color(diagram.ColorExternParticipant), BoxColor: s.color(diagram.ColorExternalBox),
			},
		)
	})
}

// introduction explains the hub's standard package and the SPE, then adds
// the push/pull legend.
func (s *script) introduction() {
	s.note(Hubb, diagram.NoteRight, diagram.ColorNoteInfo, 18,
		em("Hubbens standardpaket (P1–P7)"),
		plain("P1. Gemensamma variabellistor"),
		plain("P2. Gemensamma definitioner/struktur"),
		plain("P3. Gemensamt räknesätt för väntetider"),
		plain("P4. Gemensamma kvalitetskontroller"),
		plain("P5. Stöd för att koppla rätt"),
		plain("P6. Mallar för leveranser"),
		plain("P7. Spårbarhet"),
	)
	s.note(SPE, diagram.NoteRight, diagram.ColorNotePurple, 16,
		em("Vad SPE är"),
		plain("• Kör frågor nära datat"),
		plain("• Hämtar ej individnivå i bulk"),
		plain("• Samlar sammanställda delresultat"),
		plain("• Används via policy-gate"),
	)
	s.run("legend", func() error {
		return s.d.AddLegend(
			diagram.LegendHeading("Push vs Pull"),
			diagram.LegendItem("Push", "Region skickar leverans (krypterad)"),
			diagram.LegendItem("Pull", "Federerad fråga via SPE → aggregat"),
		)
	})
}

// standardPackage: the hub publishes standard package updates (1).
func (s *script) standardPackage() {
	s.section("1. Standardpaket (byggs och hålls uppdaterat centralt)")
	s.block(diagram.BlockLoop, "Vid uppdatering (ny version / nya krav)", func() {
		s.msg(Hubb, Region, 1, "Publicerar uppdaterat standardpaket (P1–P7)")
		s.noteOver(Hubb, Region, diagram.ColorNoteWarning,
			plain("Regionen slipper bygga om från grunden."),
			plain("Uppgraderar version och kör samma flöde igen."),
		)
	})
}

// baseData: the region builds one broad base data set (2–5).
func (s *script) baseData() {
	s.section("2. Region skapar basunderlag (brett) och kör enligt standard")
	s.self(Region, 2, "Skapar basunderlag (brett)")
	s.self(Region, 3, "Gör automatiska kontroller (kvalitet)")
	s.self(Region, 4, "Räknar väntetider enligt gemensamt räknesätt (P3)")
	s.self(Region, 5, "Förbereder för snabb selektering")
	s.note(Region, diagram.NoteLeft, diagram.ColorNoteSuccess, 14,
		em("Nyckelidé:"),
		plain("Regionen tar fram ett bredare"),
		plain("underlag en gång. Sedan görs"),
		plain("urval per användningsfall."),
	)
}

// selections: per use case selections from the same base (6–9).
func (s *script) selections() {
	s.section("3. Urval per användningsfall (från samma basunderlag)")
	s.block(diagram.BlockGroup, "Regionen gör urval/mappning per behov", func() {
		s.self(Region, 6, "Urval A – benchmark (utan person-id)")
		s.self(Region, 7, "Urval B – SoS väntetider")
		s.self(Region, 8, "Urval C – SoS patientdata")
		s.self(Region, 9, "Urval D – övrig extern")
	})
}

// pushTracks: benchmark feedback and blind relay distribution (10–16).
func (s *script) pushTracks() {
	s.section("4. Två spår – PUSH (benchmark + extern distribution)")
	s.block(diagram.BlockPar, "Spår A: Benchmark & återkoppling (utan person-id)", func() {
		s.msg(Region, Hubb, 10, "Skickar Urval A (sammanställning utan person-id)")
		s.self(Hubb, 11, "Bygger jämförelser över regioner & tid")
		s.reply(Hubb, Region, 12, "Skickar tillbaka benchmark + insikter")

		s.otherwise("Spår B: Distribution till externa (blind relay)")

		s.msg(Region, Hubb, 13, "Skickar krypterat paket + manifest")
		s.noteOver(Region, Hubb, diagram.ColorNoteDanger,
			em("Hubben kan inte dekryptera."),
			plain("Hanterar endast transport, spårbarhet, kvittens."),
		)
		s.msg(Hubb, SoS, 14, "Vidarebefordrar krypterat paket (blind relay)")
		s.reply(SoS, Hubb, 0, "Status/kvittens")
		s.msg(Hubb, Extern, 15, "Vidarebefordrar krypterat paket (blind relay)")
		s.reply(Extern, Hubb, 0, "Status/kvittens")
		s.reply(Hubb, Region, 16, "Returnerar status/kvittenser")
	})
}

// federation: federated computation through the SPE, initiated either by
// the region/hub or by an external party behind the policy gate (17–30).
func (s *script) federation() {
	s.section("5. Federerad beräkning via SPE – PULL (sammanställda resultat)")
	s.noteOver(Hubb, Extern, diagram.ColorSectionHeader,
		em("Federering kan initieras av:"),
		plain("• Region (för egen återkoppling/benchmark)"),
		plain("• Externa användare (via policy-gate)"),
		plain("Rådata flyttas aldrig centralt – endast sammanställda delresultat."),
	)

	s.block(diagram.BlockAlt, "Alt A: Region/Hubb initierar federerad fråga", func() {
		s.block(diagram.BlockCritical, "Integritetskänsligt moment (data stannar regionalt)", func() {
			s.msg(Hubb, SPE, 17, "Startar federerad körning (Q1/Q2/Q3 + period)")
			s.msg(SPE, Region, 18, "Federerad fråga + urval")
			s.self(Region, 19, "Kör lokalt (data stannar i regionen)")
			s.reply(Region, SPE, 20, "Returnerar sammanställda delresultat")
			s.reply(SPE, Hubb, 21, "Slår ihop och lämnar sammanställning")
		})
		s.msg(Hubb, Region, 22, "Återkoppling baserat på federerat resultat")

		s.otherwise("Alt B: Extern initierar federerad fråga (via policy-gate)")

		s.block(diagram.BlockCritical, "Extern begär federerad analys (godkänd process krävs)", func() {
			s.msg(Extern, Hubb, 23, "Begär federerad analys")
			s.self(Hubb, 24, "Policy-gate (behörighet, små-talsskydd)")
			s.msg(Hubb, SPE, 25, "Startar federerad körning")
			s.msg(SPE, Region, 26, "Federerad fråga + urval")
			s.self(Region, 27, "Kör lokalt (data stannar i regionen)")
			s.reply(Region, SPE, 28, "Delresultat (endast sammanställning)")
			s.reply(SPE, Hubb, 29, "Sammanställt resultat")
		})
		s.reply(Hubb, Extern, 30, "Levererar sammanställt resultat")
		s.noteOver(Hubb, Extern, diagram.ColorNoteDanger,
			em("Extern får endast sammanställt resultat enligt policy."),
			plain("Ingen åtkomst till individdata eller rådata."),
		)
	})
}

// externalSummary recaps what each external party receives and may request.
func (s *script) externalSummary() {
	s.section("6. Externa användare (sammanfattning)")
	s.noteOver(SoS, Extern, diagram.ColorExternalBox,
		em("Socialstyrelsen (SoS)"),
		plain("• Mottar: Väntetider + PAR (krypterade via push)"),
		plain("• Kan begära: Federerade analyser (via pull/policy-gate)"),
		diagram.Blank(),
		em("Övriga externa (forskning, jämförelsetjänster)"),
		plain("• Mottar: Krypterade leveranser (om avtal finns)"),
		plain("• Kan begära: Federerade analyser (via pull/policy-gate)"),
		diagram.Blank(),
		em("Gemensamt: Hubben ser aldrig innehållet i krypterade leveranser."),
	)
}
