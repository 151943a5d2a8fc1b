package service

// AboutText is the body of the about screen and the message it shares
const AboutText = `Munkebjerg is located on a picturesque hill amidst dense forests overlooking the Vejle Fjord. The area is known for its natural beauty, exclusive hotels, hiking trails and spas. The word “Munkebjerg” translates as “Monk’s Hill”, which hints at the ancient historical atmosphere.

It is an ideal destination for:
• nature holidays
• hiking
• recuperation
• peaceful relaxation with views

Interesting facts about Munkebjerg:

1. One of the steepest climbs in Denmark
Munkebjerg is famous for its sharp serpentine - this hill hosts the Hill Climb competition every year, where classic cars compete in the climb up.

2. Landscapes like in Norway
The fjords visible from Munkebjerg are often compared to Norwegian ones, although this is central Denmark. Many guests do not expect such a “mountainous” landscape in this part of the country.

3. Unique forest - Munkebjergskoven
A mix of deciduous and coniferous trees grows here, there are many wild animals, mushrooms, and at night you can hear owls.

4. Historic hotel on the top
The Munkebjerg Hotel was opened in the 1880s and is still considered an elite place. Politicians, artists and even members of the royal family often relax here.

5. Danish tradition "krolf"
Krolf is played on the hotel grounds - a hybrid of golf and croquet. This is a very Danish style of vacation, almost unknown to anyone outside the country.`
