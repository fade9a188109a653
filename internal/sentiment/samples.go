package sentiment

// Sample is a fixed demonstration text. Expected is the hand-assigned
// polarity, kept for display only: the model is a black box and is never
// required to agree (the "neutral" sample in particular is not guaranteed
// to come back neutral).
type Sample struct {
	Text     string
	Expected Label
}

// DemoSamples are the three Arabic texts used by the demo command, one per
// polarity.
var DemoSamples = []Sample{
	{
		Expected: LabelNegative,
		Text:     "ارتفعت أسعار السلع الأساسية بشكل جنوني هذا الشهر، والمواطن لم يعد قادرًا على تحمل غلاء المعيشة، والأسواق شبه خالية من المشترين بعد موجة التضخم الأخيرة.",
	},
	{
		Expected: LabelPositive,
		Text:     "حقق الاقتصاد نموًا قويًا هذا العام مع ارتفاع ملحوظ في الصادرات، وتشير كل المؤشرات إلى تحسن كبير في مستوى المعيشة وزيادة فرص العمل للشباب.",
	},
	{
		Expected: LabelNeutral,
		Text:     "أعلن البنك المركزي عن اجتماع لجنة السياسة النقدية يوم الخميس المقبل لمناقشة أسعار الفائدة وسعر صرف الجنيه أمام الدولار.",
	},
}
